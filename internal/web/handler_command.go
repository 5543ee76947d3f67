package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/shoplist/internal/command"
)

type commandRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type commandResponse struct {
	Success bool `json:"success"`
	*command.Result
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.commands.Execute(r.Context(), owner(r), req.Text, req.Lang)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Success: true, Result: res})
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	translated, err := s.commands.Translate(r.Context(), req.Text, req.Source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"translated": translated})
}

type unmappedRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
}

func (s *Server) handleUnmapped(w http.ResponseWriter, r *http.Request) {
	var req unmappedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	lang := strings.TrimSpace(req.SourceLang)
	if lang == "" {
		lang = "unknown"
	}
	if err := s.commands.LogUnmapped(lang, req.Text); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}
