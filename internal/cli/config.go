// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"fmt"
	"log/slog"

	masker "github.com/ggwhite/go-masker/v2"

	"github.com/retr0h/auditlog/internal/config"
)

// MaskConfig returns a copy of cfg with fields tagged mask:"password"
// replaced, suitable for debug output.
func MaskConfig(
	cfg config.Config,
) (any, error) {
	masked, err := masker.NewMaskerMarshaler().Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("masking config: %w", err)
	}

	return masked, nil
}

// ValidateConfig exits when cfg fails validation.
func ValidateConfig(
	logger *slog.Logger,
	cfg *config.Config,
) {
	if err := config.Validate(cfg); err != nil {
		LogFatal(logger, "invalid configuration", err)
	}
}
