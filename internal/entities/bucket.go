package entities

type Bucket struct {
	Name     string
	Postings []Posting
}

type Classification struct {
	Primary   []Posting
	Secondary []Bucket
}

func (c Classification) HasSecondary() bool {
	for _, bucket := range c.Secondary {
		if len(bucket.Postings) > 0 {
			return true
		}
	}
	return false
}

// NonEmptySecondary returns secondary buckets that hold at least one posting, in priority order.
func (c Classification) NonEmptySecondary() []Bucket {
	var buckets []Bucket
	for _, bucket := range c.Secondary {
		if len(bucket.Postings) > 0 {
			buckets = append(buckets, bucket)
		}
	}
	return buckets
}
