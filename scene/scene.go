package scene

import (
	"errors"
	"time"
)

var (
	ErrSceneExists   = errors.New("scene already registered")
	ErrSceneNotFound = errors.New("scene not registered")
	ErrNilScene      = errors.New("nil scene")
)

// Scene is a graph root plus the camera it is seen through and an optional
// skybox.
type Scene struct {
	root   *Node
	camera Viewer
	skybox *Skybox
}

func NewScene() *Scene {
	return &Scene{root: NewNamedNode("root", nil)}
}

func (s *Scene) Root() *Node { return s.root }

// AddNode attaches node under the root.
func (s *Scene) AddNode(node *Node) error { return s.root.AddChild(node) }

func (s *Scene) RemoveNode(node *Node) error { return s.root.RemoveChild(node) }

// SetActiveCamera selects the camera used by the renderer. It does not have
// to be part of the graph.
func (s *Scene) SetActiveCamera(c Viewer) { s.camera = c }
func (s *Scene) ActiveCamera() Viewer     { return s.camera }

// SetSkybox replaces the skybox; nil removes it.
func (s *Scene) SetSkybox(sb *Skybox) { s.skybox = sb }
func (s *Scene) Skybox() *Skybox      { return s.skybox }

// Update advances the graph. A camera outside the graph is updated too.
func (s *Scene) Update(elapsed time.Duration) {
	s.root.Update(elapsed)
	if s.camera != nil && !s.contains(s.camera) {
		s.camera.Update(elapsed)
	}
}

func (s *Scene) contains(p Payload) bool {
	found := false
	s.root.Walk(func(n *Node) {
		if n.data == p {
			found = true
		}
	})
	return found
}

// Manager keeps named scenes and which one is current.
type Manager struct {
	scenes  map[string]*Scene
	current *Scene
	name    string
}

func NewManager() *Manager {
	return &Manager{scenes: make(map[string]*Scene)}
}

// AddScene registers s under name. The first scene added becomes current
// even when selectAsCurrent is false.
func (m *Manager) AddScene(name string, s *Scene, selectAsCurrent bool) error {
	if s == nil {
		return ErrNilScene
	}
	if _, ok := m.scenes[name]; ok {
		return ErrSceneExists
	}
	m.scenes[name] = s
	if selectAsCurrent || m.current == nil {
		m.current = s
		m.name = name
	}
	return nil
}

func (m *Manager) Select(name string) error {
	s, ok := m.scenes[name]
	if !ok {
		return ErrSceneNotFound
	}
	m.current = s
	m.name = name
	return nil
}

// Current returns the selected scene, or nil when none was added.
func (m *Manager) Current() *Scene          { return m.current }
func (m *Manager) CurrentName() string      { return m.name }
func (m *Manager) Scene(name string) *Scene { return m.scenes[name] }
