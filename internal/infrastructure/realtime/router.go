package realtime

import (
	"sync"
)

// Router tracks live sessions and named broadcast rooms. A user may hold any
// number of concurrent sessions (devices, tabs); every session is joined to
// its per-user room for its whole lifetime and to conversation rooms on
// demand. Membership is ephemeral: detaching a session removes it from every
// room, and a reconnecting client must re-join the conversations it cares
// about.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]Session             // sessionID -> session
	rooms        map[string]map[string]Session  // roomID -> sessionID -> session
	sessionRooms map[string]map[string]struct{} // sessionID -> set of roomIDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]Session),
		rooms:        make(map[string]map[string]Session),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a session and joins it to its per-user room.
func (r *Router) Attach(s Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.sessionRooms[s.ID()] = make(map[string]struct{})
	r.joinLocked(UserRoom(s.UserID()), s)
	r.mu.Unlock()

	if conn, ok := s.(*Connection); ok {
		conn.Start()
	}
}

// Detach removes a session from the router and from every room it joined.
func (r *Router) Detach(s Session) {
	r.mu.Lock()
	r.detachLocked(s.ID())
	r.mu.Unlock()
}

// Join adds the session to the given room. Unknown sessions are ignored.
func (r *Router) Join(roomID string, s Session) {
	r.mu.Lock()
	if _, ok := r.sessions[s.ID()]; ok {
		r.joinLocked(roomID, s)
	}
	r.mu.Unlock()
}

// Leave removes the session from the given room.
func (r *Router) Leave(roomID string, s Session) {
	r.mu.Lock()
	r.leaveLocked(roomID, s.ID())
	r.mu.Unlock()
}

// Broadcast writes payload to every session currently in the room and returns
// the number of successful deliveries. Broadcasting to an empty or unknown
// room is a no-op.
func (r *Router) Broadcast(roomID string, payload []byte) int {
	r.mu.RLock()
	room := r.rooms[roomID]
	members := make([]Session, 0, len(room))
	for _, s := range room {
		members = append(members, s)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, s := range members {
		if err := s.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked sessions and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]Session)
	r.rooms = make(map[string]map[string]Session)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close(1001, "router shutdown")
	}
}

func (r *Router) joinLocked(roomID string, s Session) {
	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]Session)
		r.rooms[roomID] = room
	}
	room[s.ID()] = s

	memberships := r.sessionRooms[s.ID()]
	if memberships == nil {
		memberships = make(map[string]struct{})
		r.sessionRooms[s.ID()] = memberships
	}
	memberships[roomID] = struct{}{}
}

func (r *Router) detachLocked(sessionID string) {
	if _, ok := r.sessions[sessionID]; !ok {
		return
	}
	delete(r.sessions, sessionID)

	for roomID := range r.sessionRooms[sessionID] {
		r.leaveLocked(roomID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(roomID string, sessionID string) {
	room := r.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, roomID)
	}
}
