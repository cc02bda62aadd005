package transfer

import (
	"strings"

	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/pkg/errors"
)

// ParseLabelSpec parses "name" or "name:color". Empty and "false" disable labeling.
// Segments after a second colon are ignored.
func ParseLabelSpec(spec string) (*models.Label, bool, error) {
	if spec == "" || spec == "false" {
		return nil, false, nil
	}
	parts := strings.Split(spec, ":")
	label := &models.Label{Name: parts[0], Color: models.DefaultLabelColor}
	if label.Name == "" {
		return nil, false, errors.Errorf("label spec %q has no name", spec)
	}
	if len(parts) > 1 && parts[1] != "" {
		label.Color = strings.TrimPrefix(parts[1], "#")
	}
	return label, true, nil
}
