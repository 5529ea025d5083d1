package resolve

import (
	"context"
	"fmt"
	"strings"

	"m8org/internal/services"
	"m8org/internal/textutil"
)

// Truncate shortens paths without asking. It drops intermediate folders
// innermost first, then trims the filename stem (keeping the extension), then
// trims the root folder and finally drops it.
type Truncate struct{}

// Resolve applies the truncation steps until the path fits.
func (Truncate) Resolve(_ context.Context, candidate string, limit int) (string, error) {
	parts := strings.Split(candidate, "/")
	fits := func() bool { return textutil.Length(strings.Join(parts, "/")) < limit }

	for !fits() && len(parts) > 2 {
		parts = append(parts[:len(parts)-2:len(parts)-2], parts[len(parts)-1])
	}
	if fits() {
		return strings.Join(parts, "/"), nil
	}

	file := parts[len(parts)-1]
	stem, ext := textutil.SplitExt(file)
	prefix := 0
	if len(parts) == 2 {
		prefix = textutil.Length(parts[0]) + 1
	}

	if budget := limit - 1 - prefix - textutil.Length(ext); budget >= 1 {
		parts[len(parts)-1] = textutil.Truncate(stem, budget) + ext
		return strings.Join(parts, "/"), nil
	}

	file = textutil.Truncate(stem, 1) + ext
	if len(parts) == 2 {
		if rootBudget := limit - 1 - 1 - textutil.Length(file); rootBudget >= 1 {
			return textutil.Truncate(parts[0], rootBudget) + "/" + file, nil
		}
	}
	if textutil.Length(file) < limit {
		return file, nil
	}
	return "", services.Wrap(services.ErrSkipped, "resolve", "truncate",
		fmt.Sprintf("%s cannot be shortened below %d characters", candidate, limit), nil)
}
