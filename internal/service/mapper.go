package service

import (
	"encoding/json"

	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/store"
)

// Значения статуса по умолчанию для полей, которых нет в запросе
const (
	defaultIsPublic          = true
	defaultAccessible        = false
	defaultDomainExists      = false
	defaultHTMLContentExists = false
	defaultSecure            = false
	defaultValidURL          = true
	defaultAI                = false
)

// ToStoreRows раскладывает запрос на создание ссылки по строкам трёх таблиц.
// Строка классификации возвращается только если в запросе есть id_area или id_cat,
// иначе она nil. id_src в строки статуса и классификации не подставляется:
// его знает только вызывающий после вставки основной записи.
func ToStoreRows(req models.CreateLinkRequest) (main, status, classification store.Row) {
	main = store.Row{}
	putString(main, "title", req.Title)
	putString(main, "url", req.URL)
	putString(main, "description", req.Description)
	putString(main, "icon", req.Icon)
	putString(main, "image", req.Image)
	putString(main, "logo", req.Logo)
	putString(main, "name", req.Name)

	status = store.Row{
		"is_public":           boolOr(req.IsPublic, defaultIsPublic),
		"accessible":          boolOr(req.Accessible, defaultAccessible),
		"domain_exists":       boolOr(req.DomainExists, defaultDomainExists),
		"html_content_exists": boolOr(req.HTMLContentExists, defaultHTMLContentExists),
		"secure":              boolOr(req.Secure, defaultSecure),
		"valid_url":           boolOr(req.ValidURL, defaultValidURL),
		"AI":                  boolOr(req.AI, defaultAI),
	}
	putString(status, "user_id", req.UserID)
	putString(status, "type", req.Type)
	if req.StatusCode != nil {
		status["status_code"] = *req.StatusCode
	}

	if !req.HasClassification() {
		return main, status, nil
	}
	classification = store.Row{
		"id_area": req.IDArea.StoreValue(),
		"id_cat":  req.IDCat.StoreValue(),
		"tag_3":   req.Tag3.StoreValue(),
		"tag_4":   req.Tag4.StoreValue(),
		"tag_5":   req.Tag5.StoreValue(),
	}
	if req.IDProvider != nil {
		classification["id_provider"] = *req.IDProvider
	}
	if len(req.Ratings) > 0 && string(req.Ratings) != "null" {
		classification["ratings"] = string(req.Ratings)
	}
	putString(classification, "AI_think", req.AIThink)
	putString(classification, "AI_Summary", req.AISummary)
	return main, status, classification
}

func putString(r store.Row, col string, v *string) {
	if v != nil {
		r[col] = *v
	}
}

func putBool(r store.Row, col string, v *bool) {
	if v != nil {
		r[col] = *v
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func optionalInt64(r store.Row, col string) *int64 {
	if v, ok := r.Int64(col); ok {
		return &v
	}
	return nil
}

func linkFromRow(r store.Row) models.Link {
	id, _ := r.Int64("id")
	return models.Link{
		ID:          id,
		Title:       r.String("title"),
		URL:         r.String("url"),
		Description: r.String("description"),
		Icon:        r.String("icon"),
		Image:       r.String("image"),
		Logo:        r.String("logo"),
		Name:        r.String("name"),
		CreatedAt:   r.Time("created_at"),
	}
}

func statusFromRow(r store.Row) *models.LinkStatus {
	id, _ := r.Int64("id")
	src, _ := r.Int64("id_src")
	return &models.LinkStatus{
		ID:                id,
		IDSrc:             src,
		UserID:            r.String("user_id"),
		Accessible:        r.Bool("accessible"),
		DomainExists:      r.Bool("domain_exists"),
		HTMLContentExists: r.Bool("html_content_exists"),
		IsPublic:          r.Bool("is_public"),
		Secure:            r.Bool("secure"),
		ValidURL:          r.Bool("valid_url"),
		AI:                r.Bool("AI"),
		StatusCode:        optionalInt64(r, "status_code"),
		Type:              r.String("type"),
		CreatedAt:         r.Time("created_at"),
	}
}

func slotFromRow(r store.Row, col string) models.Slot {
	v, ok := r.Int64(col)
	if !ok {
		return models.Slot{}
	}
	return models.SlotOf(v)
}

func classificationFromRow(r store.Row) *models.LinkClassification {
	id, _ := r.Int64("id")
	src, _ := r.Int64("id_src")
	c := &models.LinkClassification{
		ID:         id,
		IDSrc:      src,
		IDArea:     slotFromRow(r, "id_area"),
		IDCat:      slotFromRow(r, "id_cat"),
		Tag3:       slotFromRow(r, "tag_3"),
		Tag4:       slotFromRow(r, "tag_4"),
		Tag5:       slotFromRow(r, "tag_5"),
		IDProvider: optionalInt64(r, "id_provider"),
		AIThink:    r.String("AI_think"),
		AISummary:  r.String("AI_Summary"),
		CreatedAt:  r.Time("created_at"),
	}
	if ratings := r.String("ratings"); ratings != "" {
		if json.Valid([]byte(ratings)) {
			c.Ratings = json.RawMessage(ratings)
		} else {
			c.Ratings, _ = json.Marshal(ratings)
		}
	}
	return c
}

func listFromRow(r store.Row) models.UserList {
	id, _ := r.Int64("id")
	return models.UserList{
		ID:           id,
		Name:         r.String("name"),
		Description:  r.String("description"),
		Public:       r.Bool("public"),
		IDUser:       r.String("id_user"),
		IDCollection: optionalInt64(r, "id_collection"),
		CreatedAt:    r.Time("created_at"),
		ModifiedAt:   r.Time("modified_at"),
	}
}

func listItemFromRow(r store.Row) models.ListItem {
	id, _ := r.Int64("id")
	list, _ := r.Int64("id_list")
	src, _ := r.Int64("id_src")
	return models.ListItem{
		ID:        id,
		IDList:    list,
		IDSrc:     src,
		CreatedAt: r.Time("created_at"),
	}
}

func collectionFromRow(r store.Row) models.Collection {
	id, _ := r.Int64("id")
	return models.Collection{
		ID:          id,
		Name:        r.String("name"),
		Description: r.String("description"),
		IsPublic:    r.Bool("is_public"),
		UserID:      r.String("user_id"),
		CreatedAt:   r.Time("created_at"),
	}
}

func linkPatch(in models.LinkInput) store.Row {
	patch := store.Row{}
	putString(patch, "title", in.Title)
	putString(patch, "url", in.URL)
	putString(patch, "description", in.Description)
	putString(patch, "icon", in.Icon)
	putString(patch, "image", in.Image)
	putString(patch, "logo", in.Logo)
	putString(patch, "name", in.Name)
	return patch
}

func listPatch(in models.ListInput) store.Row {
	patch := store.Row{}
	putString(patch, "name", in.Name)
	putString(patch, "description", in.Description)
	putBool(patch, "public", in.Public)
	putString(patch, "id_user", in.IDUser)
	if in.IDCollection != nil {
		patch["id_collection"] = *in.IDCollection
	}
	return patch
}

func collectionPatch(in models.CollectionInput) store.Row {
	patch := store.Row{}
	putString(patch, "name", in.Name)
	putString(patch, "description", in.Description)
	putBool(patch, "is_public", in.IsPublic)
	putString(patch, "user_id", in.UserID)
	return patch
}
