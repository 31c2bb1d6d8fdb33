package notifier

// StaticPageDirectory is a fixed page -> endpoint mapping loaded from
// configuration. It stands in for the page-configuration service.
type StaticPageDirectory struct {
	endpoints map[int64]string
}

func NewStaticPageDirectory(endpoints map[int64]string) *StaticPageDirectory {
	if endpoints == nil {
		endpoints = make(map[int64]string)
	}
	return &StaticPageDirectory{endpoints: endpoints}
}

func (d *StaticPageDirectory) EndpointFor(pageID int64) (string, bool) {
	url, ok := d.endpoints[pageID]
	return url, ok
}
