// Package proto содержит сообщения и описание gRPC сервиса ссылок.
package proto

import "github.com/tempizhere/linkvault/internal/models"

// CreateLinkRequest - запрос на создание ссылки со связанными записями
type CreateLinkRequest struct {
	Link models.CreateLinkRequest `json:"link"`
}

// CreateLinkResponse - идентификатор созданной ссылки
type CreateLinkResponse struct {
	ID int64 `json:"id"`
}

// GetLinksRequest - запрос всех ссылок
type GetLinksRequest struct{}

// GetLinksResponse - ссылки со статусом и классификацией
type GetLinksResponse struct {
	Links []models.LinkView `json:"links"`
}

// GetLinkRequest - запрос одной ссылки
type GetLinkRequest struct {
	ID int64 `json:"id"`
}

// GetLinkResponse - ссылка со статусом и классификацией
type GetLinkResponse struct {
	Link models.LinkView `json:"link"`
}

// DeleteLinkRequest - запрос на удаление ссылки
type DeleteLinkRequest struct {
	ID int64 `json:"id"`
}

// DeleteLinkResponse - результат удаления
type DeleteLinkResponse struct {
	Success bool `json:"success"`
}

// PingRequest - проверка состояния
type PingRequest struct{}

// PingResponse - доступность хранилища
type PingResponse struct {
	StoreAvailable bool `json:"store_available"`
}
