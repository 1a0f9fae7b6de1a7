package domain

import "time"

// Client описывает клиента
type Client struct {
	ID          int64
	Name        string
	Surname     string
	Company     string // уникальна среди всех клиентов
	Position    string
	Address     string
	ZipCode     string
	Province    string
	PhoneNumber string // функциональный ключ для обновления и удаления
	BirthDate   time.Time
}

func NewClient(name, surname, company, position, address, zipCode, province, phoneNumber string,
	birthDate time.Time) *Client {
	return &Client{
		Name:        name,
		Surname:     surname,
		Company:     company,
		Position:    position,
		Address:     address,
		ZipCode:     zipCode,
		Province:    province,
		PhoneNumber: phoneNumber,
		BirthDate:   birthDate,
	}
}
