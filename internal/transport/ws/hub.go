package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Host message types
const (
	MsgSubjectJoined  MessageType = "subject_joined"
	MsgSubjectLeft    MessageType = "subject_left"
	MsgAnswerRecorded MessageType = "answer_recorded"
)

// Shared message types (host and subject)
const (
	MsgAIThinking          MessageType = "ai_thinking"
	MsgQuestionReady       MessageType = "question_ready"
	MsgAssessmentCompleted MessageType = "assessment_completed"
	MsgResultsReady        MessageType = "results_ready"
	MsgSessionClosed       MessageType = "session_closed"
	MsgError               MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for assessments
type Hub struct {
	// Assessment -> connections
	hostConns    map[string]*Connection
	subjectConns map[string]map[string]*Connection // assessmentID -> subjectID -> conn

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	disconnect chan string
}

// Connection represents a WebSocket connection
type Connection struct {
	AssessmentID string
	SubjectID    string // Empty for host connections
	IsHost       bool
	Send         chan []byte
	Hub          *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	AssessmentID string
	ToHost       bool
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		hostConns:    make(map[string]*Connection),
		subjectConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		disconnect:   make(chan string),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsHost {
				h.hostConns[conn.AssessmentID] = conn
				log.Printf("Host connected to assessment %s", conn.AssessmentID)
			} else {
				if h.subjectConns[conn.AssessmentID] == nil {
					h.subjectConns[conn.AssessmentID] = make(map[string]*Connection)
				}
				h.subjectConns[conn.AssessmentID][conn.SubjectID] = conn
				log.Printf("Subject %s connected to assessment %s", conn.SubjectID, conn.AssessmentID)

				// Notify host
				h.notifyHostSubject(conn.AssessmentID, conn.SubjectID, MsgSubjectJoined)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsHost {
				if existing, ok := h.hostConns[conn.AssessmentID]; ok && existing == conn {
					delete(h.hostConns, conn.AssessmentID)
					close(conn.Send)
					log.Printf("Host disconnected from assessment %s", conn.AssessmentID)
				}
			} else {
				if subjects, ok := h.subjectConns[conn.AssessmentID]; ok {
					if existing, ok := subjects[conn.SubjectID]; ok && existing == conn {
						delete(subjects, conn.SubjectID)
						close(conn.Send)
						log.Printf("Subject %s disconnected from assessment %s", conn.SubjectID, conn.AssessmentID)

						// Notify host
						h.notifyHostSubject(conn.AssessmentID, conn.SubjectID, MsgSubjectLeft)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToHost {
				if conn, ok := h.hostConns[msg.AssessmentID]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				// All subject connections for the assessment
				if subjects, ok := h.subjectConns[msg.AssessmentID]; ok {
					for _, conn := range subjects {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()

		case assessmentID := <-h.disconnect:
			h.mu.Lock()
			closing, _ := json.Marshal(&Message{
				Type:    MsgSessionClosed,
				Payload: json.RawMessage(`{"assessmentId":"` + assessmentID + `"}`),
			})
			if conn, ok := h.hostConns[assessmentID]; ok {
				select {
				case conn.Send <- closing:
				default:
				}
				delete(h.hostConns, assessmentID)
				close(conn.Send)
			}
			if subjects, ok := h.subjectConns[assessmentID]; ok {
				for _, conn := range subjects {
					select {
					case conn.Send <- closing:
					default:
					}
					close(conn.Send)
				}
				delete(h.subjectConns, assessmentID)
			}
			h.mu.Unlock()
			log.Printf("Closed all connections for assessment %s", assessmentID)
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToHost sends a message to the assessment host (implements service.Broadcaster)
func (h *Hub) BroadcastToHost(assessmentID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		AssessmentID: assessmentID,
		ToHost:       true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToSubject sends a message to every subject connection of an
// assessment (implements service.Broadcaster)
func (h *Hub) BroadcastToSubject(assessmentID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		AssessmentID: assessmentID,
		ToHost:       false,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectAssessment closes every connection for an assessment after a
// session_closed notice (implements service.Broadcaster)
func (h *Hub) DisconnectAssessment(assessmentID string) {
	h.disconnect <- assessmentID
}

func (h *Hub) notifyHostSubject(assessmentID, subjectID string, msgType MessageType) {
	if conn, ok := h.hostConns[assessmentID]; ok {
		data, _ := json.Marshal(&Message{
			Type:    msgType,
			Payload: json.RawMessage(`{"subjectId":"` + subjectID + `"}`),
		})
		select {
		case conn.Send <- data:
		default:
		}
	}
}
