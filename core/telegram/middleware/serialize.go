package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// SerializeByChat returns a middleware that runs at most one handler per chat
// at a time. Telebot dispatches every update in its own goroutine; without
// this gate two quick answers from the same chat could interleave mid-quiz.
// Mutex entries are retained for the process lifetime, which is acceptable
// for the expected number of distinct chats.
func SerializeByChat() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[int64]*sync.Mutex)
	)
	lockFor := func(chatID int64) *sync.Mutex {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[chatID]
		if !ok {
			l = &sync.Mutex{}
			locks[chatID] = l
		}
		return l
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil {
				return next(c)
			}
			l := lockFor(chat.ID)
			l.Lock()
			defer l.Unlock()
			return next(c)
		}
	}
}
