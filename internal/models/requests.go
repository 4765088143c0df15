package models

import "encoding/json"

// CreateLinkRequest - тело запроса на создание ссылки со статусом и классификацией.
// Необязательные поля заданы указателями: nil означает, что поле не пришло.
type CreateLinkRequest struct {
	// Основная запись
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Image       *string `json:"image,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Name        *string `json:"name,omitempty"`

	// Статус
	UserID            *string `json:"user_id,omitempty"`
	Accessible        *bool   `json:"accessible,omitempty"`
	DomainExists      *bool   `json:"domain_exists,omitempty"`
	HTMLContentExists *bool   `json:"html_content_exists,omitempty"`
	IsPublic          *bool   `json:"is_public,omitempty"`
	Secure            *bool   `json:"secure,omitempty"`
	ValidURL          *bool   `json:"valid_url,omitempty"`
	AI                *bool   `json:"AI,omitempty"`
	StatusCode        *int64  `json:"status_code,omitempty"`
	Type              *string `json:"type,omitempty"`

	// Классификация
	IDArea     Slot            `json:"id_area,omitzero"`
	IDCat      Slot            `json:"id_cat,omitzero"`
	Tag3       Slot            `json:"tag_3,omitzero"`
	Tag4       Slot            `json:"tag_4,omitzero"`
	Tag5       Slot            `json:"tag_5,omitzero"`
	IDProvider *int64          `json:"id_provider,omitempty"`
	Ratings    json.RawMessage `json:"ratings,omitempty"`
	AIThink    *string         `json:"AI_think,omitempty"`
	AISummary  *string         `json:"AI_Summary,omitempty"`
}

// HasClassification сообщает, нужна ли запись классификации: в запросе есть
// id_area или id_cat, в том числе со значением -1 или null
func (r CreateLinkRequest) HasClassification() bool {
	return r.IDArea.Present || r.IDCat.Present
}

// LinkInput - изменяемые поля основной записи ссылки
type LinkInput struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Image       *string `json:"image,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Name        *string `json:"name,omitempty"`
}

// ListInput - поля списка пользователя
type ListInput struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Public       *bool   `json:"public,omitempty"`
	IDUser       *string `json:"id_user,omitempty"`
	IDCollection *int64  `json:"id_collection,omitempty"`
}

// CollectionInput - поля коллекции
type CollectionInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
}

// ListItemInput - добавление ссылки в список
type ListItemInput struct {
	IDList int64 `json:"id_list"`
	IDSrc  int64 `json:"id_src"`
}

// RemoveItemRequest - тело запроса на удаление элемента списка
type RemoveItemRequest struct {
	ItemID int64 `json:"itemId"`
}
