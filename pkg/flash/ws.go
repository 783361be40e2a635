package flash

import "github.com/gorilla/websocket"

// WireMessage is the JSON frame written for each delivered message when the
// rendering surface lives on the other end of a socket.
type WireMessage struct {
	Seq       uint64 `json:"seq"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	CSSClass  string `json:"cssClass"`
	TimeoutMs int64  `json:"timeoutMs"`
}

// DeliverWebSocket registers a delivery callback that forwards every
// message over conn as one JSON frame, preserving FIFO order. Buffered
// messages flush immediately. Write errors go to onErr (may be nil);
// delivery continues for later messages, leaving reconnect policy to the
// host.
func DeliverWebSocket(q *Queue, conn *websocket.Conn, onErr func(error)) {
	q.Deliver(func(d Delivered) {
		frame := WireMessage{
			Seq:       d.Seq,
			Kind:      d.Kind,
			Text:      d.Text,
			CSSClass:  q.CSSClass(d.Kind),
			TimeoutMs: d.Timeout.Milliseconds(),
		}
		if err := conn.WriteJSON(frame); err != nil {
			q.log.Debug().Err(err).Uint64("seq", d.Seq).Msg("flash: websocket write failed")
			if onErr != nil {
				onErr(err)
			}
		}
	})
}
