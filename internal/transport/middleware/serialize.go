package middleware

import (
	"net/http"
	"sync"
)

// Serialize lets one request at a time reach next. The ledgers behind the
// handlers are not safe for concurrent use.
func Serialize(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
