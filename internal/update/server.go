package update

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/goverland-labs/goverland-grant-updates/pkg/httpsrv"
)

type Server struct {
	service *Service
}

func NewServer(s *Service) *Server {
	return &Server{
		service: s,
	}
}

// Register adds the update routes. Schedules are created from grant enacted events only.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/proposals/{proposal}/updates", s.GetProposalUpdates).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{proposal}/updates/funds", s.GetFundsReleased).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{proposal}/update", s.CreateUpdate).Methods(http.MethodPost)
	r.HandleFunc("/proposals/{proposal}/update", s.SubmitUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/proposals/{proposal}/update", s.DeleteUpdate).Methods(http.MethodDelete)
	r.HandleFunc("/updates/{id}", s.GetUpdate).Methods(http.MethodGet)
}

type submitRequest struct {
	ID string `json:"id"`
	Content
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (s *Server) GetProposalUpdates(w http.ResponseWriter, r *http.Request) {
	proposalID := mux.Vars(r)["proposal"]

	res, err := s.service.GetProposalUpdates(r.Context(), proposalID)
	if err != nil {
		s.writeError(w, err, "get proposal updates")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) GetUpdate(w http.ResponseWriter, r *http.Request) {
	u, err := s.service.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err, "get update")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	var req Content
	if err := httpsrv.DecodeBody(w, r, &req); err != nil {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	u, err := s.service.Create(r.Context(), mux.Vars(r)["proposal"], httpsrv.Caller(r), req)
	if err != nil {
		s.writeError(w, err, "create update")

		return
	}

	httpsrv.WriteJSON(w, http.StatusCreated, u)
}

func (s *Server) SubmitUpdate(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpsrv.DecodeBody(w, r, &req); err != nil || req.ID == "" {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	u, err := s.service.Submit(r.Context(), SubmitRequest{
		ProposalID: mux.Vars(r)["proposal"],
		UpdateID:   req.ID,
		Caller:     httpsrv.Caller(r),
		Content:    req.Content,
	})
	if err != nil {
		s.writeError(w, err, "submit update")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) DeleteUpdate(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := httpsrv.DecodeBody(w, r, &req); err != nil || req.ID == "" {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	err := s.service.Delete(r.Context(), mux.Vars(r)["proposal"], req.ID, httpsrv.Caller(r))
	if err != nil {
		s.writeError(w, err, "delete update")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, true)
}

func (s *Server) GetFundsReleased(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.FundsReleased(r.Context(), mux.Vars(r)["proposal"])
	if err != nil {
		s.writeError(w, err, "get funds released")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, ErrUpdateNotFound), errors.Is(err, ErrProposalNotFound):
		httpsrv.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		httpsrv.WriteError(w, http.StatusForbidden, "unauthorized")
	case errors.Is(err, ErrNotOnTime),
		errors.Is(err, ErrNotCompleted),
		errors.Is(err, ErrInvalidContent):
		httpsrv.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg(action)
		httpsrv.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
