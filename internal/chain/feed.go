package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	subscribeMethod = "suix_subscribeEvent"
	feedWriteWait   = 10 * time.Second
)

// EventEnvelope - уведомление узла о событии.
type EventEnvelope struct {
	ID struct {
		TxDigest string `json:"txDigest"`
		EventSeq string `json:"eventSeq"`
	} `json:"id"`
	Type        string          `json:"type"`
	Sender      string          `json:"sender"`
	ParsedJSON  json.RawMessage `json:"parsedJson"`
	TimestampMs U64             `json:"timestampMs"`
}

// Timestamp - время события.
func (e EventEnvelope) Timestamp() time.Time {
	return time.UnixMilli(int64(e.TimestampMs))
}

// Decode разбирает полезную нагрузку события.
func (e EventEnvelope) Decode() (any, error) {
	return DecodeEvent(e.Type, e.ParsedJSON)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcMessage struct {
	ID     *int            `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Params *struct {
		Subscription json.RawMessage `json:"subscription"`
		Result       EventEnvelope   `json:"result"`
	} `json:"params,omitempty"`
}

// Feed подписывается на события модуля game через websocket JSON-RPC.
// Переподключение - забота вызывающего: Run возвращается при обрыве.
type Feed struct {
	url       string
	packageID string
	dialer    *ws.Dialer
	log       zerolog.Logger
}

func NewFeed(url, packageID string, log zerolog.Logger) *Feed {
	return &Feed{url: url, packageID: packageID, dialer: ws.DefaultDialer, log: log}
}

// Run подписывается и передаёт каждое событие в handler до отмены ctx или обрыва.
// Отмена ctx не считается ошибкой.
func (f *Feed) Run(ctx context.Context, handler func(EventEnvelope)) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(ws.CloseMessage,
				ws.FormatCloseMessage(ws.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  subscribeMethod,
		Params: []any{map[string]any{
			"MoveEventModule": map[string]string{"package": f.packageID, "module": "game"},
		}},
	}
	if err := conn.SetWriteDeadline(time.Now().Add(feedWriteWait)); err != nil {
		return err
	}
	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	for {
		var msg rpcMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var closeErr *ws.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == ws.CloseNormalClosure {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		switch {
		case msg.Error != nil:
			return fmt.Errorf("subscription rejected: %d %s", msg.Error.Code, msg.Error.Message)
		case msg.ID != nil:
			f.log.Info().Str("subscription", string(msg.Result)).Msg("subscribed to game events")
		case msg.Params != nil:
			handler(msg.Params.Result)
		default:
			f.log.Debug().Str("method", msg.Method).Msg("unexpected message on event feed")
		}
	}
}
