package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Closer обеспечивает потокобезопасное закрытие ресурсов приложения.
// Функции закрытия выполняются в порядке LIFO: последним добавленный
// ресурс закрывается первым.
type Closer struct {
	mu    sync.Mutex
	once  sync.Once
	funcs []Func
}

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

func NewCloser() *Closer {
	return &Closer{}
}

// Add добавляет функцию в список закрытия
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close запускает закрытие всех зарегистрированных функций (LIFO).
// Если контекст отменяется до завершения, оставшиеся функции не выполняются
// и возвращается ошибка с перечнем незакрытых ресурсов.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var msgs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			select {
			case <-ctx.Done():
				msgs = append(msgs, fmt.Sprintf("[!] %d func(s) skipped: %v", i+1, ctx.Err()))
				err = fmt.Errorf("shutdown interrupted:\n%s", strings.Join(msgs, "\n"))
				return
			default:
			}

			if closeErr := funcs[i](ctx); closeErr != nil {
				msgs = append(msgs, fmt.Sprintf("[!] %v", closeErr))
			}
		}

		if len(msgs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(msgs, "\n"))
		}
	})

	return err
}
