package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// Размеры страниц поиска по умолчанию.
const (
	DefaultPage     int64 = 1
	DefaultPageSize int64 = 25
)

// storeError переводит ошибку репозитория в ошибку приложения и пишет её в лог.
func storeError(err error, op string, fields logrus.Fields) error {
	switch {
	case errors.Is(err, common.ErrInvalidID):
		return apperror.Wrap(err, apperror.ErrCodeValidation, apperror.ErrInvalidID.Message)
	case errors.Is(err, common.ErrIncompletePatch):
		return apperror.Wrap(err, apperror.ErrCodeInternal, op)
	case common.IsDuplicate(err):
		return apperror.Wrap(err, apperror.ErrCodeConflict, op)
	}

	logger.L().WithFields(fields).WithError(err).Error(op)
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, op)
}

// slugify приводит строку к виду "dash-case": строчные латинские буквы и цифры через дефис.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// formatPrice форматирует цену в целых долларах: 1250 -> "$1,250".
func formatPrice(price *int64) string {
	if price == nil {
		return ""
	}
	v := *price
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}

func paging(page, pageSize int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func ptr[T any](v T) *T {
	return &v
}

func validValue(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

// Services набор сервисов приложения, собранный в main.
type Services struct {
	Categories *CategoryService
	Listings   *ListingService
	Sponsors   *SponsorService
	Reports    *ReportService
	Users      *UserService
	Seed       *SeedService
}
