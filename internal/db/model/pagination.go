package model

import (
	"encoding/base64"
	"encoding/json"
)

// Pagination tokens are the URL-safe base64 of a JSON cursor. They are opaque
// to clients but not signed, a forged token can only skip rows of the same user.

func DecodePaginationToken[T any](token string) (*T, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	cursor := new(T)
	if err := json.Unmarshal(raw, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func GetPaginationToken[T any](cursor T) (string, error) {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}
