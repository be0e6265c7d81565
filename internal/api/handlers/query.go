package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QueryString необязательный строковый параметр, пустая строка = не задан
func QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryInt необязательный целочисленный параметр
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return &v, nil
}

// QueryInt64 необязательный идентификатор
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	v, err := ParseID(*raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return &v, nil
}

// QueryBool необязательный флаг, отсутствие = false
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return false, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return false, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return v, nil
}
