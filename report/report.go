// Package report renders sieving run reports as JSON and as HTML charts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hupe1980/sievego"
	"github.com/hupe1980/sievego/codec"
)

// WriteJSON encodes rep with c, indented when c supports it.
// A nil codec uses codec.Default.
func WriteJSON(w io.Writer, rep sievego.Report, c codec.Codec) error {
	b, err := codec.Indent(c, rep)
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}

	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// RenderHTML writes a page with the per-generation norm trace of rep.
func RenderHTML(w io.Writer, rep sievego.Report) error {
	page := components.NewPage().SetPageTitle(title(rep))
	page.AddCharts(normChart(rep))
	if rep.Engine != sievego.EngineGauss {
		page.AddCharts(sizeChart(rep))
	}
	return page.Render(w)
}

func title(rep sievego.Report) string {
	return fmt.Sprintf("%s sieve %s", rep.Engine, rep.Params)
}

func generations(trace []sievego.GenerationStats) []string {
	xs := make([]string, len(trace))
	for i, g := range trace {
		xs[i] = strconv.Itoa(g.Generation)
	}
	return xs
}

func normChart(rep sievego.Report) *charts.Line {
	minNorms := make([]opts.LineData, len(rep.Result.Trace))
	meanNorms := make([]opts.LineData, len(rep.Result.Trace))
	bestNorms := make([]opts.LineData, len(rep.Result.Trace))
	for i, g := range rep.Result.Trace {
		minNorms[i] = opts.LineData{Value: g.MinNorm}
		meanNorms[i] = opts.LineData{Value: g.MeanNorm}
		bestNorms[i] = opts.LineData{Value: g.BestNorm}
	}

	subtitle := fmt.Sprintf("status=%s, norm=%.3f, bound=%.3f, elapsed=%s",
		rep.Result.Status, rep.Result.Norm, rep.Bound, rep.Elapsed)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title(rep), Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title(rep), Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "norm"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(generations(rep.Result.Trace)).
		AddSeries("min norm", minNorms,
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "bound", YAxis: rep.Bound}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Label:     &opts.Label{Show: opts.Bool(true)},
				LineStyle: &opts.LineStyle{Type: "dashed", Width: 1},
			}),
		)
	if rep.Engine != sievego.EngineGauss {
		line.AddSeries("best norm", bestNorms).
			AddSeries("mean norm", meanNorms)
	}
	return line
}

func sizeChart(rep sievego.Report) *charts.Bar {
	sizes := make([]opts.BarData, len(rep.Result.Trace))
	for i, g := range rep.Result.Trace {
		sizes[i] = opts.BarData{Value: g.Size}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "generation size"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(generations(rep.Result.Trace)).
		AddSeries("size", sizes).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}
