package dto

import "carshare/internal/domains/user/model"

type ProfileResponse struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

func (r *ProfileResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Nickname = m.Nickname
}
