package wheel

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/wheel"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/spinner"
)

const writeTimeout = 5 * time.Second

// SpinLive Живой спин по вебсокету: кадр на каждый тик движка, затем результат.
// Закрытие соединения клиентом останавливает колесо, спин не сохраняется
func (h *Handler) SpinLive(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}
	participant := strings.TrimSpace(r.URL.Query().Get("participant"))
	if participant == "" {
		http.Error(w, "participant is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Читаем только чтобы заметить закрытие соединения
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	var mu sync.Mutex
	send := func(msg dto.LiveMessage) error {
		mu.Lock()
		defer mu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(msg)
	}

	result, err := h.serv.SpinLive(ctx, id, participant, func(f spinner.Frame) {
		frame := converter.ToFrame(f)
		if err := send(dto.LiveMessage{Type: "frame", Frame: &frame}); err != nil {
			cancel()
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			log.Debug().Int64("wheel_id", id).Str("participant", participant).Msg("live spin aborted by client")
			return
		}
		status := api.Status(err)
		text := err.Error()
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Int64("wheel_id", id).Msg("live spin failed")
			text = http.StatusText(status)
		}
		_ = send(dto.LiveMessage{Type: "error", Error: text})
		closeWith(conn, websocket.ClosePolicyViolation, text)
		return
	}

	response := converter.ToSpinResponse(*result)
	if err := send(dto.LiveMessage{Type: "result", Result: &response}); err != nil {
		return
	}
	closeWith(conn, websocket.CloseNormalClosure, "bye")
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}
