package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxBodySize = 1 << 20

// Decode читает JSON тело запроса и проверяет теги validate. Неизвестные поля
// и лишние данные после объекта считаются ошибкой
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return payload, errors.New("invalid request body: trailing data")
	}
	if err := Validate(payload); err != nil {
		return payload, err
	}
	return payload, nil
}
