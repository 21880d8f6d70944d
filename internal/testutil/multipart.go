package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// File is one file part of a multipart form
type File struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody encodes form fields and files, returning the body and its content type
func MultipartBody(t *testing.T, fields map[string]string, files ...File) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("writing field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("creating form file %s: %v", f.Filename, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("writing form file %s: %v", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// NewMultipartRequest builds a multipart/form-data request
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string, files ...File) *http.Request {
	t.Helper()

	body, contentType := MultipartBody(t, fields, files...)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

// FileHeaders parses files back into headers as a server would see them under field
func FileHeaders(t *testing.T, field string, files ...File) []*multipart.FileHeader {
	t.Helper()

	for i := range files {
		files[i].Field = field
	}
	req := NewMultipartRequest(t, http.MethodPost, "/", nil, files...)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}
	return req.MultipartForm.File[field]
}
