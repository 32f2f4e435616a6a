package gekko

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

var ErrUnknownAsset = errors.New("unknown asset")

type AssetId string

type AssetServer struct {
	meshes    map[AssetId]MeshAsset
	materials map[AssetId]MaterialAsset
	names     map[string]AssetId
}

type AssetServerModule struct{}

type Mesh struct {
	assetId AssetId
}

func (m Mesh) Id() AssetId { return m.assetId }

type Material struct {
	assetId AssetId
}

func (m Material) Id() AssetId { return m.assetId }

type MeshAsset struct {
	version uint
	Name    string
	Shape   gizmo.Shape
}

type MaterialAsset struct {
	version uint
	Name    string
	Color   [4]float32
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:    make(map[AssetId]MeshAsset),
		materials: make(map[AssetId]MaterialAsset),
		names:     make(map[string]AssetId),
	}
}

// LoadMesh registers a shape under name. Loading a name again replaces the
// asset and bumps its version, handles stay valid.
func (server *AssetServer) LoadMesh(name string, shape gizmo.Shape) Mesh {
	key := "mesh/" + name
	id, ok := server.names[key]
	if !ok {
		id = makeAssetId()
		server.names[key] = id
	}

	server.meshes[id] = MeshAsset{
		version: server.meshes[id].version + 1,
		Name:    name,
		Shape:   shape,
	}

	return Mesh{
		assetId: id,
	}
}

func (server *AssetServer) LoadMaterial(name string, color [4]float32) Material {
	key := "material/" + name
	id, ok := server.names[key]
	if !ok {
		id = makeAssetId()
		server.names[key] = id
	}

	server.materials[id] = MaterialAsset{
		version: server.materials[id].version + 1,
		Name:    name,
		Color:   color,
	}

	return Material{
		assetId: id,
	}
}

func (server *AssetServer) MeshByName(name string) (Mesh, error) {
	id, ok := server.names["mesh/"+name]
	if !ok {
		return Mesh{}, fmt.Errorf("mesh %q: %w", name, ErrUnknownAsset)
	}
	return Mesh{assetId: id}, nil
}

func (server *AssetServer) MaterialByName(name string) (Material, error) {
	id, ok := server.names["material/"+name]
	if !ok {
		return Material{}, fmt.Errorf("material %q: %w", name, ErrUnknownAsset)
	}
	return Material{assetId: id}, nil
}

func (server *AssetServer) Mesh(mesh Mesh) (MeshAsset, error) {
	asset, ok := server.meshes[mesh.assetId]
	if !ok {
		return MeshAsset{}, fmt.Errorf("mesh %s: %w", mesh.assetId, ErrUnknownAsset)
	}
	return asset, nil
}

func (server *AssetServer) Material(material Material) (MaterialAsset, error) {
	asset, ok := server.materials[material.assetId]
	if !ok {
		return MaterialAsset{}, fmt.Errorf("material %s: %w", material.assetId, ErrUnknownAsset)
	}
	return asset, nil
}

// MeshNames lists registered mesh names in sorted order.
func (server *AssetServer) MeshNames() []string {
	names := make([]string, 0, len(server.meshes))
	for _, m := range server.meshes {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	return names
}

// RegisterGizmoCatalog loads every mesh shape and material color of a
// handle table.
func (server *AssetServer) RegisterGizmoCatalog(table *gizmo.Table) {
	for _, name := range slices.Sorted(maps.Keys(table.Meshes)) {
		server.LoadMesh(name, table.Meshes[name])
	}
	for _, name := range slices.Sorted(maps.Keys(table.Materials)) {
		server.LoadMaterial(name, table.Materials[name])
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[AssetServer](app); ok {
		return
	}
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
