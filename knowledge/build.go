package knowledge

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stratchat"
)

// Banner texts shown when the strategy document cannot be used.
const (
	BannerParse      = "حدث خطأ أثناء تحليل البيانات المصدرية. قد لا أتمكن من الإجابة على الأسئلة بشكل صحيح."
	BannerShape      = "البيانات المصدرية ليست بالتنسيق المتوقع. لا يمكن تحميل قاعدة المعرفة."
	BannerUnreadable = "حدث خطأ أثناء تحميل قاعدة البيانات المعرفية. قد لا أتمكن من الإجابة على الأسئلة بشكل صحيح."
)

// Build parses a strategy document and derives its knowledge snapshot.
// Generic entries are written first and curated entries overwrite them.
// Blank input yields an empty snapshot without error.
func Build(data []byte) (*stratchat.Knowledge, error) {
	k := stratchat.EmptyKnowledge()
	k.Fingerprint = xxhash.Sum64(data)
	k.LoadedAt = time.Now()
	if len(bytes.TrimSpace(data)) == 0 {
		return k, nil
	}

	root, err := ParseNode(data)
	if err != nil {
		return nil, stratchat.WrapError(stratchat.EINVALID, err, BannerParse)
	}
	if root.Kind != Object {
		return nil, stratchat.Errorf(stratchat.EINVALID, BannerShape)
	}

	doc := Unwrap(root)
	for _, e := range Flatten(doc) {
		k.Base.Put(e)
	}
	s := DecodeStrategy(doc)
	Synthesize(s, k.Base)

	for _, y := range s.Timeline {
		for _, id := range y.ProjectIDs {
			k.Roadmap.Add(id)
		}
	}
	for _, p := range s.Projects {
		id := strings.ToUpper(strings.TrimSpace(p.ID))
		name := strings.TrimSpace(p.Name)
		if id == "" || name == "" {
			continue
		}
		k.Projects = append(k.Projects, stratchat.KnownProject{
			ID:         id,
			Name:       name,
			Initiative: strings.TrimSpace(p.Initiative),
		})
	}
	return k, nil
}

// LoadFile reads and builds the document at path.
func LoadFile(path string) (*stratchat.Knowledge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stratchat.WrapError(stratchat.EINVALID, err, BannerUnreadable)
	}
	k, err := Build(data)
	if err != nil {
		return nil, err
	}
	k.Path = path
	return k, nil
}
