package models

import "time"

// User представляет профиль пользователя, видимый в сессии.
// Пароль и соль сюда никогда не попадают, они живут только в Credential.
type User struct {
	CreatedAt time.Time `json:"createdAt"`        // время регистрации
	ID        string    `json:"id"`               // UUID пользователя
	Email     string    `json:"email"`            // уникальный email (сравнение с учетом регистра)
	Name      string    `json:"name"`             // отображаемое имя
	Avatar    string    `json:"avatar,omitempty"` // опциональный URL аватара
}

// Credential представляет запись в таблице учетных данных.
// Хранится отдельно от состояния приложения под собственным ключом.
type Credential struct {
	CreatedAt    time.Time `json:"createdAt"`
	ID           string    `json:"id"`               // совпадает с User.ID
	Email        string    `json:"email"`            // уникален во всей таблице
	PasswordHash string    `json:"passwordHash"`     // argon2id в формате PHC: параметры, соль и хеш
	Name         string    `json:"name"`             // имя на момент последнего обновления профиля
	Avatar       string    `json:"avatar,omitempty"` // аватар
}

// User returns the profile part of the credential, without password fields.
func (c *Credential) User() *User {
	return &User{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Avatar:    c.Avatar,
		CreatedAt: c.CreatedAt,
	}
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
