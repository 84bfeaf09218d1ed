// Package chi implements the HTTP API on the go-chi router.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vuzz-app/vuzz/internal/domain"
	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
	domevent "github.com/vuzz-app/vuzz/internal/domain/event"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
	chatuc "github.com/vuzz-app/vuzz/internal/usecase/chat"
	discoveryuc "github.com/vuzz-app/vuzz/internal/usecase/discovery"
	eventuc "github.com/vuzz-app/vuzz/internal/usecase/event"
	healthuc "github.com/vuzz-app/vuzz/internal/usecase/health"
	useruc "github.com/vuzz-app/vuzz/internal/usecase/user"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server hosts the HTTP handlers for all use cases.
type Server struct {
	users         *useruc.Service
	events        *eventuc.Service
	discovery     *discoveryuc.Service
	chats         *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	users *useruc.Service,
	events *eventuc.Service,
	discovery *discoveryuc.Service,
	chats *chatuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:     users,
		events:    events,
		discovery: discovery,
		chats:     chats,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound),
		sentinelHandler(domain.ErrEventNotFound, http.StatusNotFound, CodeEventNotFound),
		sentinelHandler(domain.ErrChatNotFound, http.StatusNotFound, CodeChatNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrUnknownTag, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNoSession, http.StatusConflict, CodeNoSession),
		sentinelHandler(domain.ErrSessionExhausted, http.StatusConflict, CodeSessionExhausted),
		sentinelHandler(domain.ErrNotParticipant, http.StatusForbidden, CodeNotParticipant),
	}
	return s
}

// Routes mounts all API routes on the given router. Business routes
// live under /api/v1; health and metrics stay at the root so probes
// and scrapers bypass auth.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", s.apiRoutes)
}

func (s *Server) apiRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.searchUsers)
		r.Route("/{userID}", func(r chi.Router) {
			r.Put("/", s.registerUser)
			r.Get("/", s.getUser)
			r.Put("/tags", s.setTags)
			r.Put("/location", s.setLocation)
			r.Post("/events", s.signUp)
			r.Get("/events", s.upcomingEvents)
			r.Post("/discovery", s.fetchCandidates)
			r.Get("/discovery", s.discoverySnapshot)
			r.Post("/discovery/decision", s.recordDecision)
			r.Get("/chats", s.chatPreviews)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", s.createEvent)
		r.Get("/", s.listEvents)
		r.Get("/{eventID}", s.getEvent)
	})

	r.Route("/chats", func(r chi.Router) {
		r.Post("/", s.startChat)
		r.Post("/{chatID}/messages", s.sendMessage)
		r.Get("/{chatID}/messages", s.messageHistory)
	})
}

// --- users ---

type userRequest struct {
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Age          int      `json:"age"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Tags         []string `json:"tags"`
	ProfileImage string   `json:"profileImage"`
}

type userResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Age          int      `json:"age"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Tags         []string `json:"tags,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.users.Register(r.Context(), useruc.RegisterInput{
		ID:           chi.URLParam(r, "userID"),
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		City:         req.City,
		State:        req.State,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Tags:         req.Tags,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(&p))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	p, err := s.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(&p))
}

func (s *Server) setTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.users.SetTags(r.Context(), chi.URLParam(r, "userID"), req.Tags)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(&p))
}

func (s *Server) setLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
		State     string  `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.users.SetLocation(
		r.Context(), chi.URLParam(r, "userID"),
		req.Latitude, req.Longitude, req.City, req.State,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(&p))
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query parameter q is required")
		return
	}

	profiles, err := s.users.Search(r.Context(), q, queryInt(r, "limit"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]userResponse, len(profiles))
	for i := range profiles {
		items[i] = userToResponse(&profiles[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// --- events ---

type locationDTO struct {
	Text      string  `json:"text,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type eventRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Location    locationDTO `json:"location"`
	Tags        []string    `json:"tags"`
	ImageURL    string      `json:"imageUrl"`
	CreatedBy   string      `json:"createdBy"`
}

type eventResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date,omitempty"`
	Time        string      `json:"time,omitempty"`
	Location    locationDTO `json:"location"`
	Tags        []string    `json:"tags,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	CreatedAt   int64       `json:"createdAt"`
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ev, err := s.events.Create(r.Context(), eventuc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location: domevent.Location{
			Text:      req.Location.Text,
			City:      req.Location.City,
			State:     req.Location.State,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, eventToResponse(&ev))
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToResponse(&ev))
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": eventsToResponse(events)})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.EventID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "eventId is required")
		return
	}

	if err := s.events.SignUp(r.Context(), chi.URLParam(r, "userID"), req.EventID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) upcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.Upcoming(r.Context(), chi.URLParam(r, "userID"), queryInt(r, "limit"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": eventsToResponse(events)})
}

// --- discovery ---

type snapshotResponse struct {
	Current        *eventResponse `json:"current"`
	Next           *eventResponse `json:"next"`
	Cursor         int            `json:"cursor"`
	Total          int            `json:"total"`
	Remaining      int            `json:"remaining"`
	Exhausted      bool           `json:"exhausted"`
	LocationFilter bool           `json:"locationFilter"`
	TagFilter      bool           `json:"tagFilter"`
}

func (s *Server) fetchCandidates(w http.ResponseWriter, r *http.Request) {
	locationFilter := queryBool(r, "location_filter")
	tagFilter := queryBool(r, "tag_filter")

	snap := s.discovery.FetchCandidates(r.Context(), chi.URLParam(r, "userID"), locationFilter, tagFilter)
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

func (s *Server) discoverySnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.discovery.Snapshot(chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

func (s *Server) recordDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	decision, err := domain.ParseDecision(req.Decision)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	snap, err := s.discovery.RecordDecision(r.Context(), chi.URLParam(r, "userID"), decision)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// --- chats ---

type chatResponse struct {
	ID            string    `json:"id"`
	Participants  [2]string `json:"participants"`
	CreatedAt     int64     `json:"createdAt"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	LastMessageAt int64     `json:"lastMessageAt,omitempty"`
}

type previewResponse struct {
	chatResponse
	OtherID       string `json:"otherId"`
	OtherUsername string `json:"otherUsername,omitempty"`
	MessageCount  int64  `json:"messageCount"`
}

type messageResponse struct {
	ID       string `json:"id"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	SentAt   int64  `json:"sentAt"`
	Read     bool   `json:"read"`
}

func (s *Server) startChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Participants []string `json:"participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Participants) != 2 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "exactly two participants are required")
		return
	}

	c, err := s.chats.Start(r.Context(), req.Participants[0], req.Participants[1])
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chatToResponse(&c))
}

func (s *Server) chatPreviews(w http.ResponseWriter, r *http.Request) {
	previews, err := s.chats.Previews(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]previewResponse, len(previews))
	for i, p := range previews {
		items[i] = previewResponse{
			chatResponse:  chatToResponse(&p.Chat),
			OtherID:       p.OtherID,
			OtherUsername: p.OtherUsername,
			MessageCount:  p.MessageCount,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	m, err := s.chats.Send(r.Context(), chi.URLParam(r, "chatID"), req.SenderID, req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageToResponse(&m))
}

func (s *Server) messageHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query parameter user_id is required")
		return
	}

	msgs, err := s.chats.History(r.Context(), chi.URLParam(r, "chatID"), userID, queryInt(r, "limit"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]messageResponse, len(msgs))
	for i := range msgs {
		items[i] = messageToResponse(&msgs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// --- health ---

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func userToResponse(p *domuser.Profile) userResponse {
	return userResponse{
		ID:           p.ID(),
		Email:        p.Email(),
		Username:     p.Username(),
		FirstName:    p.FirstName(),
		LastName:     p.LastName(),
		Age:          p.Age(),
		City:         p.City(),
		State:        p.State(),
		Latitude:     p.Latitude(),
		Longitude:    p.Longitude(),
		Tags:         p.Tags(),
		ProfileImage: p.ProfileImage(),
		CreatedAt:    p.CreatedAt(),
	}
}

func eventToResponse(ev *domevent.Event) eventResponse {
	loc := ev.Location()
	return eventResponse{
		ID:          ev.ID(),
		Title:       ev.Title(),
		Description: ev.Description(),
		Date:        ev.Date(),
		Time:        ev.Time(),
		Location: locationDTO{
			Text:      loc.Text,
			City:      loc.City,
			State:     loc.State,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		Tags:      ev.Tags(),
		ImageURL:  ev.ImageURL(),
		CreatedBy: ev.CreatedBy(),
		CreatedAt: ev.CreatedAt(),
	}
}

func eventsToResponse(events []domevent.Event) []eventResponse {
	items := make([]eventResponse, len(events))
	for i := range events {
		items[i] = eventToResponse(&events[i])
	}
	return items
}

func snapshotToResponse(snap discoveryuc.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Cursor:         snap.Cursor,
		Total:          snap.Total,
		Remaining:      snap.Remaining,
		Exhausted:      snap.Exhausted,
		LocationFilter: snap.LocationFilter,
		TagFilter:      snap.TagFilter,
	}
	if snap.Current != nil {
		cur := eventToResponse(snap.Current)
		resp.Current = &cur
	}
	if snap.Next != nil {
		next := eventToResponse(snap.Next)
		resp.Next = &next
	}
	return resp
}

func chatToResponse(c *domchat.Chat) chatResponse {
	return chatResponse{
		ID:            c.ID(),
		Participants:  c.Participants(),
		CreatedAt:     c.CreatedAt(),
		LastMessage:   c.LastMessage(),
		LastMessageAt: c.LastMessageAt(),
	}
}

func messageToResponse(m *domchat.Message) messageResponse {
	return messageResponse{
		ID:       m.ID(),
		SenderID: m.SenderID(),
		Text:     m.Text(),
		SentAt:   m.SentAt(),
		Read:     m.Read(),
	}
}

func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func queryBool(r *http.Request, name string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return false
	}
	return b
}
