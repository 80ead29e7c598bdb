package handler

import (
	"net/http"
	"strconv"
	"strings"

	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common"
	"inkwell/internal/domain/model"
	"inkwell/internal/platform/storage"

	"github.com/go-chi/chi/v5"
)

type postListData struct {
	Posts      []model.Post       `json:"posts"`
	Pagination service.Pagination `json:"pagination"`
}

type postData struct {
	Post *model.Post `json:"post"`
}

type PostHandler struct {
	posts *service.PostService
	store *storage.LocalStore
}

func NewPostHandler(posts *service.PostService, store *storage.LocalStore) *PostHandler {
	return &PostHandler{posts: posts, store: store}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := service.ListPostsQuery{
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
		AuthorID: r.URL.Query().Get("author"),
		Status:   r.URL.Query().Get("status"),
	}

	posts, pagination, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, postListData{Posts: posts, Pagination: pagination})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, postData{Post: post})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req service.CreatePostRequest
	if isMultipart(r) {
		parsed, err := h.parseCreateForm(r)
		if err != nil {
			respondError(w, err)
			return
		}
		req = *parsed
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, postData{Post: post})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req service.UpdatePostRequest
	if isMultipart(r) {
		parsed, err := h.parseUpdateForm(r)
		if err != nil {
			respondError(w, err)
			return
		}
		req = *parsed
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, postData{Post: post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	if err := h.posts.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "post deleted")
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	likes, err := h.posts.Like(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]int{"likeCount": likes})
}

const multipartMemoryLimit = 10 << 20

func (h *PostHandler) parseCreateForm(r *http.Request) (*service.CreatePostRequest, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, common.Errorf("invalid multipart form: %w", common.ErrBadRequest)
	}

	req := &service.CreatePostRequest{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
		Status:   r.FormValue("status"),
		Tags:     formTags(r),
	}

	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		url, err := h.store.Save(file, header)
		if err != nil {
			return nil, err
		}
		req.CoverImage = url
	}
	return req, nil
}

func (h *PostHandler) parseUpdateForm(r *http.Request) (*service.UpdatePostRequest, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, common.Errorf("invalid multipart form: %w", common.ErrBadRequest)
	}

	req := &service.UpdatePostRequest{}
	if v, ok := formValue(r, "title"); ok {
		req.Title = &v
	}
	if v, ok := formValue(r, "content"); ok {
		req.Content = &v
	}
	if v, ok := formValue(r, "category"); ok {
		req.Category = &v
	}
	if v, ok := formValue(r, "status"); ok {
		req.Status = &v
	}
	if _, ok := r.MultipartForm.Value["tags"]; ok {
		tags := formTags(r)
		req.Tags = &tags
	}

	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		url, err := h.store.Save(file, header)
		if err != nil {
			return nil, err
		}
		req.CoverImage = &url
	}
	return req, nil
}

func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// formTags accepts both repeated tags fields and a single comma-separated one.
func formTags(r *http.Request) []string {
	raw := r.MultipartForm.Value["tags"]
	tags := []string{}
	for _, value := range raw {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
