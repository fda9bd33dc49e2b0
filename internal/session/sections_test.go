// ABOUTME: Tests for section role gating
// ABOUTME: Checks the role table and the fail-closed default

package session

import (
	"testing"

	"github.com/nmorales/ventas-admin/internal/client"
)

func userWithRoles(names ...string) *client.Usuario {
	u := &client.Usuario{Email: "test@example.com"}
	for i, name := range names {
		u.Role = append(u.Role, client.Role{ID: i + 1, Name: name})
	}
	return u
}

func TestAllowed_RoleTable(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		section Section
		want    bool
	}{
		{"dueño consults clients", []string{RoleDueno}, SectionClientesConsultar, true},
		{"empleado consults clients", []string{RoleEmpleado}, SectionClientesConsultar, true},
		{"vendedor cannot consult clients", []string{RoleVendedor}, SectionClientesConsultar, false},
		{"vendedor registers clients", []string{RoleVendedor}, SectionClientesRegistrar, true},
		{"administrador registers clients", []string{RoleAdministrador}, SectionClientesRegistrar, true},
		{"dueño cannot register clients", []string{RoleDueno}, SectionClientesRegistrar, false},
		{"dueño manages brands", []string{RoleDueno}, SectionMarcas, true},
		{"empleado cannot manage brands", []string{RoleEmpleado}, SectionMarcas, false},
		{"vendedor manages products", []string{RoleVendedor}, SectionProductos, true},
		{"administrador manages suppliers", []string{RoleAdministrador}, SectionProveedores, true},
		{"empleado views sales", []string{RoleEmpleado}, SectionVentas, true},
		{"vendedor cannot view sales", []string{RoleVendedor}, SectionVentas, false},
		{"vendedor edits profile", []string{RoleVendedor}, SectionPerfil, true},
		{"dueño views statistics", []string{RoleDueno}, SectionEstadisticas, true},
		{"only administrador manages users", []string{RoleVendedor}, SectionUsuarios, false},
		{"administrador manages users", []string{RoleAdministrador}, SectionUsuarios, true},
		{"any matching role suffices", []string{RoleEmpleado, RoleVendedor}, SectionMarcas, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(userWithRoles(tt.roles...), tt.section); got != tt.want {
				t.Errorf("Allowed(%v, %s) = %v, want %v", tt.roles, tt.section, got, tt.want)
			}
		})
	}
}

func TestAllowed_FailClosed(t *testing.T) {
	if Allowed(nil, SectionVentas) {
		t.Error("nil user must be denied")
	}
	if Allowed(userWithRoles(RoleDueno), Section("unknown")) {
		t.Error("unknown section must be denied")
	}
	if Allowed(userWithRoles(), SectionVentas) {
		t.Error("user without roles must be denied")
	}
	if Allowed(userWithRoles("Dueño"), SectionVentas) {
		t.Error("role comparison must be case-sensitive")
	}
}
