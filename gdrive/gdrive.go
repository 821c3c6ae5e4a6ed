// Package gdrive mirrors store documents to a Google Drive folder. From
// the tracker's point of view this is an opaque blob store with get/put by
// name; the OAuth dance and the Drive REST calls live here.
package gdrive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/shazib/mftracker/config"
)

const (
	apiBase    = "https://www.googleapis.com/drive/v3"
	uploadBase = "https://www.googleapis.com/upload/drive/v3"
)

// ErrNotConfigured is returned when the Drive credentials are absent.
var ErrNotConfigured = errors.New("gdrive: credentials are not configured")

// ErrNotFound is returned when Get cannot locate the named blob.
var ErrNotFound = errors.New("gdrive: file not found")

// Store is a blob store over one Drive folder.
type Store struct {
	hc     *http.Client
	folder string // folder name; resolved to an id lazily
	fid    string
}

// New builds a Store from the configured OAuth client and token file.
// The token must have been obtained out of band (first-run browser flow);
// an expired access token is refreshed and the refreshed token is not
// written back, the refresh token in the file keeps working.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DriveClientID == "" || cfg.DriveClientSecret == "" {
		return nil, ErrNotConfigured
	}
	token, err := readToken(cfg.DriveTokenFile)
	if err != nil {
		return nil, fmt.Errorf("gdrive: cannot read token file: %w", err)
	}
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.DriveClientID,
		ClientSecret: cfg.DriveClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"https://www.googleapis.com/auth/drive.file"},
	}
	return &Store{hc: oauthCfg.Client(ctx, token), folder: cfg.DriveFolder}, nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	return token, json.NewDecoder(f).Decode(token)
}

// driveFile is the subset of the Drive file resource the store needs.
type driveFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// folderID resolves (creating if needed) the backup folder.
func (s *Store) folderID(ctx context.Context) (string, error) {
	if s.fid != "" {
		return s.fid, nil
	}
	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.folder' and trashed = false", s.folder)
	found, err := s.search(ctx, q)
	if err != nil {
		return "", err
	}
	if len(found) > 0 {
		s.fid = found[0].ID
		return s.fid, nil
	}
	created, err := s.create(ctx, map[string]string{
		"name":     s.folder,
		"mimeType": "application/vnd.google-apps.folder",
	}, nil)
	if err != nil {
		return "", err
	}
	s.fid = created.ID
	return s.fid, nil
}

// Put uploads the content under the given name, replacing any previous
// version of the blob.
func (s *Store) Put(ctx context.Context, name string, content io.Reader) error {
	fid, err := s.folderID(ctx)
	if err != nil {
		return err
	}
	existing, err := s.find(ctx, name, fid)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return s.update(ctx, existing.ID, content)
	}
	_, err = s.create(ctx, map[string]any{"name": name, "parents": []string{fid}}, content)
	return err
}

// Get downloads the named blob.
func (s *Store) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	fid, err := s.folderID(ctx)
	if err != nil {
		return nil, err
	}
	file, err := s.find(ctx, name, fid)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/files/"+file.ID+"?alt=media", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("gdrive: download %s: %s", name, resp.Status)
	}
	return resp.Body, nil
}

func (s *Store) find(ctx context.Context, name, folderID string) (*driveFile, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", name, folderID)
	found, err := s.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func (s *Store) search(ctx context.Context, query string) ([]driveFile, error) {
	addr := apiBase + "/files?q=" + url.QueryEscape(query) + "&fields=files(id,name)"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gdrive: search: %s", resp.Status)
	}
	var payload struct {
		Files []driveFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Files, nil
}

// create posts a metadata-only or multipart (metadata + media) request.
func (s *Store) create(ctx context.Context, metadata any, content io.Reader) (*driveFile, error) {
	var addr string
	var body io.Reader
	var contentType string

	meta, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	if content == nil {
		addr = apiBase + "/files"
		body = bytes.NewReader(meta)
		contentType = "application/json"
	} else {
		addr = uploadBase + "/files?uploadType=multipart"
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json"}})
		if err != nil {
			return nil, err
		}
		part.Write(meta)
		media, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/octet-stream"}})
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(media, content); err != nil {
			return nil, err
		}
		mw.Close()
		body = buf
		contentType = "multipart/related; boundary=" + mw.Boundary()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gdrive: create: %s", resp.Status)
	}
	file := &driveFile{}
	return file, json.NewDecoder(resp.Body).Decode(file)
}

func (s *Store) update(ctx context.Context, id string, content io.Reader) error {
	addr := uploadBase + "/files/" + id + "?uploadType=media"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, addr, content)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gdrive: update: %s", resp.Status)
	}
	return nil
}
