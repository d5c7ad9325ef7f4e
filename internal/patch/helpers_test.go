package patch

import (
	"errors"
	"strings"

	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
)

func asAggError(err error, target **domainagg.Error) bool { return errors.As(err, target) }

func contains(s, sub string) bool { return strings.Contains(s, sub) }
