// Package websocket pushes Klondike state changes to browser clients.
//
// A central Hub tracks clients per session. Clients connect with
// /ws?session=<id>; every mutation made through the REST API is then pushed to
// the clients of that session as a "state_update" message carrying the full
// engine.GameState, followed by a "game_event" message with the events the
// move produced (deal, move, reveal, foundation, victory).
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Each connection gets a read and a write goroutine. Clients that fall
// behind by more than a buffer's worth of messages are dropped. Cancelling
// the context passed to Run closes every connection.
package websocket
