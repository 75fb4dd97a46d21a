package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/logger"
)

// Logger интерфейс для логирования паник
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
}

// RecoveryHandler перехватывает panic в фоновых горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создаёт обработчик, пишущий паники в l.
func NewRecoveryHandler(l Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: l}
}

func (rh *RecoveryHandler) recover(name string) {
	if r := recover(); r != nil {
		rh.logger.WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("panic in goroutine")
	}
}

// Go запускает fn в горутине с именем name.
func (rh *RecoveryHandler) Go(name string, fn func()) {
	go func() {
		defer rh.recover(name)
		fn()
	}()
}

// GoWithContext запускает fn(ctx) в горутине с именем name.
func (rh *RecoveryHandler) GoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer rh.recover(name)
		fn(ctx)
	}()
}

// SafeGo запускает горутину, паника в которой попадает в лог процесса.
func SafeGo(name string, fn func()) {
	NewRecoveryHandler(logger.L()).Go(name, fn)
}

// SafeGoWithContext то же, что SafeGo, с контекстом отмены.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	NewRecoveryHandler(logger.L()).GoWithContext(ctx, name, fn)
}
