// internal/models/common.go
package models

// Enums

type Material string

const (
	MaterialLeather  Material = "leather"
	MaterialMetal    Material = "metal"
	MaterialSilicone Material = "silicone"
)

type Popularity string

const (
	PopularityHit         Popularity = "hit"
	PopularityNew         Popularity = "new"
	PopularityRecommended Popularity = "recommended"
)

type Collection string

const (
	CollectionBusiness Collection = "business"
	CollectionLimited  Collection = "limited"
	CollectionPremium  Collection = "premium"
	CollectionSeasonal Collection = "seasonal"
)

type CategoryKind string

const (
	CategoryKindNormal     CategoryKind = "normal"
	CategoryKindMaterial   CategoryKind = "material"
	CategoryKindCollection CategoryKind = "collection"
	CategoryKindPopularity CategoryKind = "popularity"
)

func Materials() []Material {
	return []Material{MaterialLeather, MaterialMetal, MaterialSilicone}
}

func Popularities() []Popularity {
	return []Popularity{PopularityHit, PopularityNew, PopularityRecommended}
}

func Collections() []Collection {
	return []Collection{CollectionBusiness, CollectionLimited, CollectionPremium, CollectionSeasonal}
}
