package filter

// BT.601 luma weights in thousandths.
const (
	LumaR     = 299
	LumaG     = 587
	LumaB     = 114
	LumaScale = LumaR + LumaG + LumaB
)

// Default parameters used by Parse when a textual filter omits them.
const (
	DefaultGaussianSigma = 1.0
	maxKernelSide        = 99
)
