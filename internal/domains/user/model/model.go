package model

import "carshare/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldNickname     = "nickname"
	FieldMessageToken = "message_token"
)

type User struct {
	ID           string `db:"id"`
	Nickname     string `db:"nickname"`
	MessageToken string `db:"message_token"`
	model.Metadata
}
