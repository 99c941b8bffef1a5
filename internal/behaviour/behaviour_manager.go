package behaviour

// Frame carries the clock for one tick, in seconds.
type Frame struct {
	Delta   float64
	Elapsed float64
}

type Behaviour interface {
	Start()
	Update(frame Frame)
}

type BehaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

// BehaviourManager runs behaviours in insertion order. Start is called once,
// on the first tick after Add.
type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) UpdateAll(frame Frame) {
	// Index loop: a behaviour may remove itself during Update.
	for i := 0; i < len(m.behaviours); i++ {
		w := &m.behaviours[i]
		if !w.started {
			w.Behaviour.Start()
			w.started = true
		}
		b := w.Behaviour
		w.Behaviour.Update(frame)
		if i < len(m.behaviours) && m.behaviours[i].Behaviour != b {
			i--
		}
	}
}
