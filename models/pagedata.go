package models

type PageData struct {
	Tasks     []Task
	Groceries []GroceryItem
	Cards     []CollectionCard

	Task    *Task
	Grocery *GroceryItem
	Card    *CollectionCard
}
