package report

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/rkwm713/makeready-cli/internal/model"
)

// WriteShapefile writes the pole summary as a point shapefile. The sibling
// .shx and .dbf files are created alongside path.
func WriteShapefile(path string, points []model.GeoPoint) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "report: create shapefile %s", path)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.StringField("POLE", 25),
		shp.StringField("OWNER", 50),
		shp.StringField("STRUCTURE", 50),
		shp.StringField("STATUS", 25),
	}
	w.SetFields(fields)

	for i, p := range points {
		w.Write(&shp.Point{X: p.Longitude, Y: p.Latitude})
		if err := w.WriteAttribute(i, 0, p.Pole); err != nil {
			return eris.Wrapf(err, "report: shapefile attribute for pole %s", p.Pole)
		}
		if err := w.WriteAttribute(i, 1, p.Owner); err != nil {
			return eris.Wrapf(err, "report: shapefile attribute for pole %s", p.Pole)
		}
		if err := w.WriteAttribute(i, 2, p.Structure); err != nil {
			return eris.Wrapf(err, "report: shapefile attribute for pole %s", p.Pole)
		}
		if err := w.WriteAttribute(i, 3, p.Status); err != nil {
			return eris.Wrapf(err, "report: shapefile attribute for pole %s", p.Pole)
		}
	}
	return nil
}
