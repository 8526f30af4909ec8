package kit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// URLParamID parses a positive integer path parameter.
func URLParamID(r *http.Request, key string) (int64, ValidationErrors) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(key, "positive_integer")
	}
	return id, nil
}
