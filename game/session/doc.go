// Package session keeps the in-memory Klondike sessions.
//
// Each session owns one engine.Game plus its config and access times. IDs are
// case-insensitive; an empty ID on Create gets a random 4-character hex ID.
// Sessions are never written to disk, and idle ones can be dropped with
// CleanupExpiredSessions.
//
// Usage:
//
//	manager := session.NewManager(logrus.StandardLogger())
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// The manager is safe for concurrent use. The games it hands out are not;
// callers serialize access to a single game themselves.
package session
