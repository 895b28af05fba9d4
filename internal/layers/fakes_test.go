package layers

// Test doubles for the host services.

type fakeBitmap struct {
	name string
}

func (b *fakeBitmap) Width() int { return len(b.name) }
func (b *fakeBitmap) Height() int { return 1 }

type fakeLoader struct {
	loads []string
}

func (l *fakeLoader) Load(graphic string) Bitmap {
	l.loads = append(l.loads, graphic)
	return &fakeBitmap{name: graphic}
}

type fakePrim struct {
	bitmap           Bitmap
	opacity, z       float64
	blend            BlendMode
	originX, originY float64
	x, y             float64
	anchorX, anchorY float64
	rotation         float64
	bitmapSets       int
}

func (p *fakePrim) SetBitmap(b Bitmap) {
	p.bitmap = b
	p.bitmapSets++
}
func (p *fakePrim) SetOpacity(o float64) { p.opacity = o }
func (p *fakePrim) SetZ(z float64) { p.z = z }
func (p *fakePrim) SetBlendMode(m BlendMode) { p.blend = m }
func (p *fakePrim) SetOrigin(x, y float64) { p.originX, p.originY = x, y }
func (p *fakePrim) SetPosition(x, y float64) { p.x, p.y = x, y }
func (p *fakePrim) SetAnchor(x, y float64) { p.anchorX, p.anchorY = x, y }
func (p *fakePrim) SetRotation(radians float64) { p.rotation = radians }
func (p *fakePrim) bitmapName() string {
	if b, ok := p.bitmap.(*fakeBitmap); ok {
		return b.name
	}
	return ""
}

type fakeFactory struct {
	made []*fakePrim
}

func (f *fakeFactory) NewTiling() TilingPrimitive {
	p := &fakePrim{}
	f.made = append(f.made, p)
	return p
}

func (f *fakeFactory) NewSprite() SpritePrimitive {
	p := &fakePrim{}
	f.made = append(f.made, p)
	return p
}

type fakeContainer struct {
	children []Primitive
	inserts  int
	removes  int
}

func (c *fakeContainer) Insert(p Primitive, z float64) {
	c.children = append(c.children, p)
	c.inserts++
}

func (c *fakeContainer) Remove(p Primitive) {
	for i, child := range c.children {
		if child == p {
			c.children = append(c.children[:i], c.children[i+1:]...)
			c.removes++
			return
		}
	}
}

type fakeCamera struct {
	dx, dy float64
	tw, th float64
}

func (c *fakeCamera) DisplayX() float64 { return c.dx }
func (c *fakeCamera) DisplayY() float64 { return c.dy }
func (c *fakeCamera) TileWidth() float64 { return c.tw }
func (c *fakeCamera) TileHeight() float64 { return c.th }

type fakeChar struct {
	x, y float64
	dir  int
}

func (c *fakeChar) RealX() float64 { return c.x }
func (c *fakeChar) RealY() float64 { return c.y }
func (c *fakeChar) Direction() int { return c.dir }

type fakeChars struct {
	player *fakeChar
	events map[int]*fakeChar
}

func (c *fakeChars) Player() Character { return c.player }

func (c *fakeChars) Event(id int) (Character, bool) {
	e, ok := c.events[id]
	if !ok {
		return nil, false
	}
	return e, true
}

type mapVars map[int]float64

func (v mapVars) Value(id int) float64 { return v[id] }
