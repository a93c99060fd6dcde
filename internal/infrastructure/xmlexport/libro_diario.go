// Package xmlexport serializa el libro diario a un documento XML apto para
// intercambio con otros sistemas contables.
//
// Estructura del documento:
//
//	<LibroDiario perfil="..." generado="RFC3339">
//	  <Cuentas>
//	    <Cuenta id="..." codigo="..." tipo="..." naturaleza="...">
//	      <Nombre/> <Saldo/>
//	    </Cuenta>
//	  </Cuentas>
//	  <Asientos>
//	    <Asiento id="..." fecha="2006-01-02">
//	      <Descripcion/>
//	      <Partida cuenta="..." debe="..." haber="..."/>
//	    </Asiento>
//	  </Asientos>
//	  <Ecuacion activos="..." pasivos="..." capital="..." cuadrada="true"/>
//	</LibroDiario>
package xmlexport

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Contable-api/internal/application/ports"
)

var _ ports.LibroDiarioXMLExporter = (*LibroDiarioExporter)(nil)

// LibroDiarioExporter implementa ports.LibroDiarioXMLExporter con etree.
type LibroDiarioExporter struct{}

// NewLibroDiarioExporter construye el exportador.
func NewLibroDiarioExporter() *LibroDiarioExporter { return &LibroDiarioExporter{} }

// ExportarLibroDiario serializa el reporte completo y devuelve sus bytes.
func (e *LibroDiarioExporter) ExportarLibroDiario(_ context.Context, reporte ports.LibroDiarioReporte) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	raiz := doc.CreateElement("LibroDiario")
	raiz.CreateAttr("perfil", reporte.Perfil)
	raiz.CreateAttr("generado", time.Now().Format(time.RFC3339))

	cuentas := raiz.CreateElement("Cuentas")
	for _, c := range reporte.Cuentas {
		cuenta := cuentas.CreateElement("Cuenta")
		cuenta.CreateAttr("id", c.ID)
		cuenta.CreateAttr("codigo", c.Codigo)
		cuenta.CreateAttr("tipo", string(c.Tipo))
		cuenta.CreateAttr("naturaleza", string(c.Naturaleza))
		cuenta.CreateElement("Nombre").SetText(c.Nombre)
		cuenta.CreateElement("Saldo").SetText(c.Saldo.String())
	}

	asientos := raiz.CreateElement("Asientos")
	for _, tx := range reporte.Asientos {
		asiento := asientos.CreateElement("Asiento")
		asiento.CreateAttr("id", tx.ID)
		asiento.CreateAttr("fecha", tx.Fecha.Format("2006-01-02"))
		asiento.CreateElement("Descripcion").SetText(tx.Descripcion)
		for _, p := range tx.Partidas {
			partida := asiento.CreateElement("Partida")
			partida.CreateAttr("cuenta", p.CuentaID)
			partida.CreateAttr("debe", p.Debe.String())
			partida.CreateAttr("haber", p.Haber.String())
		}
	}

	ecuacion := raiz.CreateElement("Ecuacion")
	ecuacion.CreateAttr("activos", reporte.Ecuacion.Activos.String())
	ecuacion.CreateAttr("pasivos", reporte.Ecuacion.Pasivos.String())
	ecuacion.CreateAttr("capital", reporte.Ecuacion.Capital.String())
	ecuacion.CreateAttr("cuadrada", fmt.Sprintf("%t", reporte.Ecuacion.Cuadra))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar libro diario: %w", err)
	}
	return out, nil
}
