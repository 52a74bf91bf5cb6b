package entities

// Place is the venue sub-object returned by the upstream listing endpoint.
type Place struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Event is an upstream event record. The selected-event store persists it as
// an immutable snapshot, so the field set must stay in sync with the listing
// payload: a partial serialization would corrupt the reservation flow.
type Event struct {
	ID             string `json:"id"`
	NomeDoEvento   string `json:"nome_do_evento"`
	CasaDoEvento   string `json:"casa_do_evento"`
	DataDoEvento   string `json:"data_do_evento"`
	HoraDoEvento   string `json:"hora_do_evento"`
	LocalDoEvento  string `json:"local_do_evento"`
	ImagemDoEvento string `json:"imagem_do_evento"`

	Descricao          string `json:"descricao,omitempty"`
	ValorDaMesa        string `json:"valor_da_mesa,omitempty"`
	ValorDaEntrada     string `json:"valor_da_entrada,omitempty"`
	Brinde             string `json:"brinde,omitempty"`
	NumeroDeConvidados int    `json:"numero_de_convidados,omitempty"`
	ImagemDoCombo      string `json:"imagem_do_combo,omitempty"`
	Observacao         string `json:"observacao,omitempty"`

	Place Place `json:"place"`
}
