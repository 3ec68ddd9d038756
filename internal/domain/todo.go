package domain

import "time"

type Todo struct {
	TodoID    string    `json:"id" dynamodbav:"todo_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	CreatedBy string    `json:"-" dynamodbav:"created_by"`
	CreatedAt time.Time `json:"-" dynamodbav:"created_at"`
}
