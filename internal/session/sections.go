// ABOUTME: Role-gated application sections
// ABOUTME: Maps each admin section to the role names allowed to use it

package session

import "github.com/nmorales/ventas-admin/internal/client"

// Role names as the backend spells them.
const (
	RoleDueno         = "dueño"
	RoleEmpleado      = "empleado"
	RoleAdministrador = "administrador"
	RoleVendedor      = "vendedor"
)

// Section identifies a gated area of the admin UI.
type Section string

const (
	SectionClientesConsultar Section = "clientes/consultar"
	SectionClientesRegistrar Section = "clientes/registrar"
	SectionMarcas            Section = "marcas"
	SectionLineasConsultar   Section = "lineas/consultar"
	SectionLineasRegistrar   Section = "lineas/registrar"
	SectionProductos         Section = "productos"
	SectionProveedores       Section = "proveedores"
	SectionVentas            Section = "ventas"
	SectionPerfil            Section = "perfil"
	SectionEstadisticas      Section = "estadisticas"
	SectionUsuarios          Section = "usuarios"
)

// sectionRoles lists, per section, the roles that may enter it.
// A user needs at least one matching role name, compared exactly.
var sectionRoles = map[Section][]string{
	SectionClientesConsultar: {RoleDueno, RoleEmpleado},
	SectionClientesRegistrar: {RoleAdministrador, RoleVendedor},
	SectionMarcas:            {RoleDueno, RoleVendedor},
	SectionLineasConsultar:   {RoleDueno, RoleEmpleado},
	SectionLineasRegistrar:   {RoleDueno, RoleVendedor},
	SectionProductos:         {RoleDueno, RoleVendedor},
	SectionProveedores:       {RoleAdministrador, RoleVendedor},
	SectionVentas:            {RoleDueno, RoleEmpleado},
	SectionPerfil:            {RoleAdministrador, RoleVendedor},
	SectionEstadisticas:      {RoleDueno, RoleEmpleado},
	SectionUsuarios:          {RoleAdministrador},
}

// sectionOrder fixes the menu ordering.
var sectionOrder = []Section{
	SectionVentas,
	SectionClientesConsultar,
	SectionClientesRegistrar,
	SectionProductos,
	SectionMarcas,
	SectionLineasConsultar,
	SectionLineasRegistrar,
	SectionProveedores,
	SectionEstadisticas,
	SectionUsuarios,
	SectionPerfil,
}

// Sections returns every gated section in menu order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Allowed reports whether the user may enter the section. A nil user or
// an unknown section is denied.
func Allowed(u *client.Usuario, s Section) bool {
	if u == nil {
		return false
	}
	allowed, ok := sectionRoles[s]
	if !ok {
		return false
	}
	for _, role := range u.Role {
		for _, name := range allowed {
			if role.Name == name {
				return true
			}
		}
	}
	return false
}
