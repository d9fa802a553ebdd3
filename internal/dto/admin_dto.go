package dto

// DashboardStats carries the global row counts shown on the admin dashboard.
type DashboardStats struct {
	TotalUsuarios int64 `json:"totalUsuarios"`
	TotalFacturas int64 `json:"totalFacturas"`
	TotalGastos   int64 `json:"totalGastos"`
	TotalClientes int64 `json:"totalClientes"`
}

// UsuarioConStats is one row of the admin user listing.
type UsuarioConStats struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	Rol           string `json:"rol"`
	TotalFacturas int64  `json:"totalFacturas"`
	TotalGastos   int64  `json:"totalGastos"`
	TotalIngresos int64  `json:"totalIngresos"`
	TotalClientes int64  `json:"totalClientes"`
}

type UsuariosConStatsPage struct {
	Users      []UsuarioConStats `json:"users"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}
