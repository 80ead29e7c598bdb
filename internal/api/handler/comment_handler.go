package handler

import (
	"net/http"

	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common"
	"inkwell/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type commentListData struct {
	Comments   []model.Comment    `json:"comments"`
	Pagination service.Pagination `json:"pagination"`
}

type commentData struct {
	Comment *model.Comment `json:"comment"`
}

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req service.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, commentData{Comment: comment})
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, commentData{Comment: comment})
}

// ListByPost serves GET /api/comments/post/{postId}.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	comments, pagination, err := h.comments.ListByPost(r.Context(), postID, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, commentListData{Comments: comments, Pagination: pagination})
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req service.UpdateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	comment, err := h.comments.Update(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, commentData{Comment: comment})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	if err := h.comments.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "comment deleted")
}

func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	result, err := h.comments.ToggleLike(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, result)
}
