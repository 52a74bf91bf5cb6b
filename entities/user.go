package entities

// User is the upstream profile record.
type User struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Telefone   string `json:"telefone,omitempty"`
	Endereco   string `json:"endereco,omitempty"`
	FotoPerfil string `json:"foto_perfil,omitempty"`
}
