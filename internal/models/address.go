package models

// Address is a named postal address pinned to a geographic coordinate.
type Address struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressInput is the body accepted on create and update. The coordinates are
// pointers so that an omitted field can be told apart from 0.
type AddressInput struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// ToAddress materializes the input under the given id.
func (in AddressInput) ToAddress(id int64) Address {
	a := Address{ID: id, Name: in.Name, Address: in.Address}
	if in.Latitude != nil {
		a.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		a.Longitude = *in.Longitude
	}
	return a
}
