package models_test

import (
	"encoding/json"
	"fmt"

	"github.com/tempizhere/linkvault/internal/models"
)

// ExampleSlot демонстрирует чтение слотов классификации из JSON
func ExampleSlot() {
	var req models.CreateLinkRequest
	body := `{"name":"n","url":"https://e.com","id_area":3,"tag_3":"7","tag_4":-1}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		fmt.Printf("Ошибка разбора: %v\n", err)
		return
	}

	fmt.Printf("Область: %d\n", req.IDArea.StoreValue())
	fmt.Printf("Категория: %d\n", req.IDCat.StoreValue())
	fmt.Printf("Тег 3: %d\n", req.Tag3.StoreValue())
	fmt.Printf("Тег 4 задан: %t\n", req.Tag4.Valid)
	fmt.Printf("Нужна классификация: %t\n", req.HasClassification())

	// Output:
	// Область: 3
	// Категория: -1
	// Тег 3: 7
	// Тег 4 задан: false
	// Нужна классификация: true
}

// ExampleLinkView демонстрирует сериализацию ссылки без связанных записей
func ExampleLinkView() {
	view := models.LinkView{
		Link: models.Link{ID: 1, Name: "n", URL: "https://e.com"},
	}

	data, _ := json.Marshal(view)
	var fields map[string]any
	json.Unmarshal(data, &fields)

	_, hasClassification := fields["classification"]
	_, hasStatus := fields["status"]
	fmt.Printf("id: %v\n", fields["id"])
	fmt.Printf("Есть классификация: %t\n", hasClassification)
	fmt.Printf("Есть статус: %t\n", hasStatus)

	// Output:
	// id: 1
	// Есть классификация: false
	// Есть статус: false
}

// ExampleListItemInput демонстрирует сериализацию запроса на добавление элемента списка
func ExampleListItemInput() {
	item := models.ListItemInput{IDList: 5, IDSrc: 42}

	data, _ := json.Marshal(item)
	fmt.Printf("JSON запрос: %s\n", data)

	// Output:
	// JSON запрос: {"id_list":5,"id_src":42}
}
