package modmath

// GCD computes the greatest common divisor of u and v using the Euclidean
// algorithm. By convention GCD(0, v) = v and GCD(u, 0) = u.
func GCD(u, v uint32) uint32 {
	for v != 0 {
		u, v = v, u%v
	}
	return u
}
