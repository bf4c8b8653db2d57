package telop

// Remap rescales val from [0,1] into [min,max]. Values outside [0,1] are
// clamped first, so the result never leaves the target range.
func Remap(val, min, max float64) float64 {
	if val < 0 {
		val = 0
	} else if val > 1 {
		val = 1
	}
	return min + (max-min)*val
}

// RemapOr is Remap with an override: when val is outside [0,1] it returns
// outOfRange instead of the clamped result. 0 and 1 are in range.
func RemapOr(val, min, max, outOfRange float64) float64 {
	if val < 0 || val > 1 {
		return outOfRange
	}
	return Remap(val, min, max)
}
