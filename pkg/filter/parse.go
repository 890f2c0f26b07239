package filter

import (
	"strconv"
	"strings"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// Parse builds a filter from its textual form:
//
//	identity | grayscale | sharpen | sobel-x | sobel-y | laplacian
//	box:W[xH]
//	gaussian:W[xH][:SIGMA]
func Parse(s string) (Filter, error) {
	parts := strings.Split(strings.TrimSpace(strings.ToLower(s)), ":")
	name, args := parts[0], parts[1:]

	switch name {
	case "identity", "sharpen", "sobel-x", "sobel-y", "laplacian", "grayscale":
		if len(args) != 0 {
			return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "filter %q takes no arguments", name)
		}
	}

	switch name {
	case "identity":
		return Identity(), nil
	case "grayscale":
		return Grayscale(), nil
	case "sharpen":
		return Sharpen(), nil
	case "sobel-x":
		return SobelX(), nil
	case "sobel-y":
		return SobelY(), nil
	case "laplacian":
		return Laplacian(), nil
	case "box":
		if len(args) != 1 {
			return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "box filter needs a size, got %q", s)
		}
		w, h, err := parseSize(args[0])
		if err != nil {
			return nil, err
		}
		return asFilter(Box(w, h))
	case "gaussian":
		if len(args) < 1 || len(args) > 2 {
			return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "gaussian filter needs a size and optional sigma, got %q", s)
		}
		w, h, err := parseSize(args[0])
		if err != nil {
			return nil, err
		}
		sigma := DefaultGaussianSigma
		if len(args) == 2 {
			sigma, err = strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.CodeInvalidFilter, "bad gaussian sigma %q", args[1])
			}
		}
		return asFilter(Gaussian(w, h, sigma))
	default:
		return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "unknown filter %q", name)
	}
}

// ParseList parses each entry in order, skipping blanks.
func ParseList(entries []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(entries))
	for _, s := range entries {
		if strings.TrimSpace(s) == "" {
			continue
		}
		f, err := Parse(s)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// parseSize accepts "N" or "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, found := strings.Cut(s, "x")
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, apperrors.Wrapf(err, apperrors.CodeInvalidFilter, "bad filter size %q", s)
	}
	if !found {
		return w, w, nil
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, apperrors.Wrapf(err, apperrors.CodeInvalidFilter, "bad filter size %q", s)
	}
	return w, h, nil
}

// asFilter keeps a failed constructor from leaking a typed nil *Kernel.
func asFilter(k *Kernel, err error) (Filter, error) {
	if err != nil {
		return nil, err
	}
	return k, nil
}
