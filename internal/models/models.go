package models

import (
	"encoding/json"
	"time"
)

type Link struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Image       string    `json:"image"`
	Logo        string    `json:"logo"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

type LinkStatus struct {
	ID                int64     `json:"id"`
	IDSrc             int64     `json:"id_src"`
	UserID            string    `json:"user_id"`
	Accessible        bool      `json:"accessible"`
	DomainExists      bool      `json:"domain_exists"`
	HTMLContentExists bool      `json:"html_content_exists"`
	IsPublic          bool      `json:"is_public"`
	Secure            bool      `json:"secure"`
	ValidURL          bool      `json:"valid_url"`
	AI                bool      `json:"AI"`
	StatusCode        *int64    `json:"status_code"`
	Type              string    `json:"type"`
	CreatedAt         time.Time `json:"created_at"`
}

type LinkClassification struct {
	ID         int64           `json:"id"`
	IDSrc      int64           `json:"id_src"`
	IDArea     Slot            `json:"id_area"`
	IDCat      Slot            `json:"id_cat"`
	Tag3       Slot            `json:"tag_3"`
	Tag4       Slot            `json:"tag_4"`
	Tag5       Slot            `json:"tag_5"`
	IDProvider *int64          `json:"id_provider"`
	Ratings    json.RawMessage `json:"ratings,omitempty"`
	AIThink    string          `json:"AI_think"`
	AISummary  string          `json:"AI_Summary"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LinkView - ссылка вместе со связанными записями статуса и классификации.
// Отсутствующая связь не выводится.
type LinkView struct {
	Link
	Classification *LinkClassification `json:"classification,omitempty"`
	Status         *LinkStatus         `json:"status,omitempty"`
}

type UserList struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Public       bool      `json:"public"`
	IDUser       string    `json:"id_user"`
	IDCollection *int64    `json:"id_collection"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// ListView - список вместе со ссылками из его элементов
type ListView struct {
	UserList
	Links []Link `json:"links"`
}

type ListItem struct {
	ID        int64     `json:"id"`
	IDList    int64     `json:"id_list"`
	IDSrc     int64     `json:"id_src"`
	CreatedAt time.Time `json:"created_at"`
}

type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionView - коллекция вместе с входящими в неё списками
type CollectionView struct {
	Collection
	Lists []UserList `json:"lists"`
}

// Created - ответ на создание ссылки с ассоциациями
type Created struct {
	ID int64 `json:"id"`
}
