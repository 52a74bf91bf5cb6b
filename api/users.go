package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"reservas/entities"
)

type UsersClient struct {
	clients *Clients
}

func NewUsersClient(clients *Clients) *UsersClient {
	if clients == nil {
		panic("clients is nil")
	}
	return &UsersClient{clients: clients}
}

func (c UsersClient) Me(ctx context.Context, token string) (entities.User, error) {
	req, err := c.clients.newRequest(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return entities.User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		return entities.User{}, fmt.Errorf("getting profile: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user entities.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return entities.User{}, fmt.Errorf("decoding profile: %w", err)
		}
		return user, nil
	case http.StatusUnauthorized:
		return entities.User{}, ErrUnauthorized
	default:
		return entities.User{}, &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
}

// UpdateMe sends a partial profile update as multipart form data, matching
// the upstream contract. Only the provided fields are written.
func (c UsersClient) UpdateMe(ctx context.Context, token string, fields map[string]string) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("closing form: %w", err)
	}

	req, err := c.clients.newRequest(ctx, http.MethodPut, "/api/users/me", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
}
