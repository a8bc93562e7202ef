package survey

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

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/survey/topics", s.GetTopics).Methods(http.MethodGet)
	r.HandleFunc("/survey/decode", s.DecodeSurvey).Methods(http.MethodPost)
	r.HandleFunc("/survey/encode", s.EncodeSurvey).Methods(http.MethodPost)
	r.HandleFunc("/survey/summary", s.GetSummary).Methods(http.MethodPost)
}

type encodedRequest struct {
	Survey string `json:"survey"`
}

type surveyRequest struct {
	Survey Survey `json:"survey"`
}

type summaryRequest struct {
	Surveys []string `json:"surveys"`
}

func (s *Server) GetTopics(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.Topics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list survey topics")
		httpsrv.WriteError(w, http.StatusInternalServerError, "internal error")

		return
	}

	refs := make([]TopicRef, 0, len(list))
	for _, t := range list {
		refs = append(refs, t.Ref())
	}

	httpsrv.WriteJSON(w, http.StatusOK, refs)
}

func (s *Server) DecodeSurvey(w http.ResponseWriter, r *http.Request) {
	var req encodedRequest
	if err := httpsrv.DecodeBody(w, r, &req); err != nil {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	res, err := s.service.Decode(r.Context(), req.Survey)
	if err != nil {
		writeError(w, err, "decode survey")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, surveyRequest{Survey: res})
}

func (s *Server) EncodeSurvey(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := httpsrv.DecodeBody(w, r, &req); err != nil {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	res, err := s.service.Encode(req.Survey)
	if err != nil {
		writeError(w, err, "encode survey")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, encodedRequest{Survey: res})
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := httpsrv.DecodeBody(w, r, &req); err != nil {
		httpsrv.WriteError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	res, err := s.service.Summary(r.Context(), req.Surveys)
	if err != nil {
		writeError(w, err, "survey summary")

		return
	}

	httpsrv.WriteJSON(w, http.StatusOK, res)
}

func writeError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrUnrecognizedReaction) ||
		errors.Is(err, ErrInvalidToken) {
		httpsrv.WriteError(w, http.StatusBadRequest, err.Error())

		return
	}

	log.Error().Err(err).Msg(action)
	httpsrv.WriteError(w, http.StatusInternalServerError, "internal error")
}
