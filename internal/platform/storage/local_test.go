package storage

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/common"
	"inkwell/internal/platform/config"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(&config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: maxBytes,
	})
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return store
}

func uploadRequest(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="coverImage"; filename=%q`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("coverImage")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file, header
}

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	store := newTestStore(t, 1024)
	file, header := uploadRequest(t, "photo.png", "image/png", []byte("fake image bytes"))
	defer file.Close()

	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/coverImage-") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q, want /uploads/coverImage-*.png", url)
	}

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("stored bytes = %q", data)
	}
}

func TestSaveRejectsNonImageExtension(t *testing.T) {
	store := newTestStore(t, 1024)
	file, header := uploadRequest(t, "script.sh", "text/x-shellscript", []byte("#!/bin/sh"))
	defer file.Close()

	if _, err := store.Save(file, header); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation for a non-image extension, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 8)
	file, header := uploadRequest(t, "big.png", "image/png", []byte("more than eight bytes"))
	defer file.Close()

	if _, err := store.Save(file, header); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation for an oversized file, got %v", err)
	}
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store := newTestStore(t, 1024)

	first, headerA := uploadRequest(t, "same.png", "image/png", []byte("a"))
	defer first.Close()
	second, headerB := uploadRequest(t, "same.png", "image/png", []byte("b"))
	defer second.Close()

	urlA, err := store.Save(first, headerA)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	urlB, err := store.Save(second, headerB)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if urlA == urlB {
		t.Fatalf("two uploads produced the same name %q", urlA)
	}
}
